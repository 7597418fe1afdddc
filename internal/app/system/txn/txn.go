// internal/app/system/txn/txn.go

// Package txn runs multi-document writes inside a Mongo transaction when
// the server supports them (replica set or mongos), and falls back to
// plain sequential execution on standalone servers.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction. When the server does not support
// transactions the function runs without one; callers that need atomicity
// on standalone servers must compensate on their own error branches.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("transactions not supported, running without", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions not supported, running without", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone mongod, old wire version).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation, 51 NoSuchTransaction-era failures,
		// 263 OperationNotSupportedInTransaction.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
