package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUserDAO,
	NewVideoDAO,
	NewCommentDAO,
	NewReactionDAO,
	NewSubscriptionDAO,
	NewHistoryDAO,
)
