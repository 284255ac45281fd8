package view

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	visitorSessionName = "visitor-session"
	visitorKeyID       = "id"
)

// VisitorID returns the anonymous id stored in the visitor's session cookie,
// issuing one on first use. Open forms are owned by this id.
func VisitorID(c echo.Context) (string, error) {
	sess, err := session.Get(visitorSessionName, c)
	if err != nil {
		return "", fmt.Errorf("load visitor session: %w", err)
	}

	if id, ok := sess.Values[visitorKeyID].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[visitorKeyID] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", fmt.Errorf("save visitor session: %w", err)
	}
	return id, nil
}
