package server

import (
	"Vidhub/handler"
)

type Handlers struct {
	Video        *handler.Video
	Comment      *handler.Comment
	Subscription *handler.Subscription
	History      *handler.History
	Search       *handler.Search
	User         *handler.User
}
