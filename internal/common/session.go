package common

import (
	"context"
)

type sessionID struct{}

func AttachSessionID(c context.Context, sid string) context.Context {
	return context.WithValue(c, sessionID{}, sid)
}

func SessionIDFromContext(c context.Context) string {
	sid, _ := c.Value(sessionID{}).(string)
	return sid
}
