package storage

import (
	"Vidhub/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// OssStore 对象 key 为 <kind>/<name>
type OssStore struct {
	Client     *oss.Client
	BucketName string
}

func NewOssStore(conf *config.OssConfig) (*OssStore, error) {
	if conf.Bucket == "" {
		return nil, errors.New("oss bucket not configured")
	}
	var provider credentials.CredentialsProvider
	if conf.AccessKeyID != "" {
		provider = credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret)
	} else {
		provider = credentials.NewEnvironmentVariableCredentialsProvider()
	}
	cfg := oss.LoadDefaultConfig().WithCredentialsProvider(provider).
		WithEndpoint(conf.Endpoint).WithRegion(conf.Region)
	return &OssStore{
		Client:     oss.NewClient(cfg),
		BucketName: conf.Bucket,
	}, nil
}

func objectKey(kind Kind, name string) string {
	return path.Join(string(kind), path.Base(name))
}

func isNotFound(err error) bool {
	var serr *oss.ServiceError
	return errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound
}

func (s *OssStore) Import(ctx context.Context, kind Kind, name, localPath string) error {
	_, err := s.Client.PutObjectFromFile(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey(kind, name)),
	}, localPath)
	if err != nil {
		return err
	}
	return os.Remove(localPath)
}

func (s *OssStore) Stat(ctx context.Context, kind Kind, name string) (int64, error) {
	if name == "" {
		return 0, ErrNotExist
	}
	out, err := s.Client.HeadObject(ctx, &oss.HeadObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey(kind, name)),
	})
	if isNotFound(err) {
		return 0, ErrNotExist
	}
	if err != nil {
		return 0, err
	}
	return out.ContentLength, nil
}

func (s *OssStore) Open(ctx context.Context, kind Kind, name string, offset, length int64) (io.ReadCloser, error) {
	req := &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey(kind, name)),
	}
	if length > 0 {
		req.Range = oss.Ptr(fmt.Sprintf("bytes=%d-%d", offset, offset+length-1))
	}
	out, err := s.Client.GetObject(ctx, req)
	if isNotFound(err) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return limitedReadCloser{Reader: io.LimitReader(out.Body, length), Closer: out.Body}, nil
}

func (s *OssStore) Remove(ctx context.Context, kind Kind, name string) error {
	if name == "" {
		return nil
	}
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey(kind, name)),
	})
	if isNotFound(err) {
		return nil
	}
	return err
}
