package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
)

// ParamError is a missing or malformed request parameter
type ParamError struct {
	Name   string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %s: %s", e.Name, e.Reason)
}

func errMissingParam(name string) error {
	return &ParamError{Name: name, Reason: "missing"}
}

func errBadParam(name string) error {
	return &ParamError{Name: name, Reason: "malformed"}
}

// param reads a parameter from the query string or, failing that, the form
func param(c *gin.Context, name string) string {
	if v, ok := c.GetQuery(name); ok {
		return v
	}
	return c.PostForm(name)
}

func requiredParam(c *gin.Context, name string) (string, error) {
	v := param(c, name)
	if v == "" {
		return "", errMissingParam(name)
	}
	return v, nil
}

func decodeParam(name, raw string, v interface{}) error {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return errBadParam(name)
	}
	return nil
}

func cardParam(c *gin.Context) (deck.Card, error) {
	raw, err := requiredParam(c, "card")
	if err != nil {
		return deck.Card{}, err
	}
	var card deck.Card
	if err := decodeParam("card", raw, &card); err != nil {
		return deck.Card{}, err
	}
	if !card.Valid() {
		return deck.Card{}, game.ErrInvalidCard
	}
	return deck.Card{Suit: card.Suit, Rank: card.Rank}, nil
}

// akey finds the access key in the parameters, the akey cookie or a
// bearer token, in that order
func akey(c *gin.Context) string {
	if v := param(c, "akey"); v != "" {
		return v
	}
	if v, err := c.Cookie("akey"); err == nil && v != "" {
		return v
	}
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

func (g *GameServer) writeError(c *gin.Context, err error) {
	var paramErr *ParamError
	if errors.As(err, &paramErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if code := game.ErrorCode(err); code != 0 {
		g.log.Debug("request refused", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.Header("X-Error-Code", strconv.Itoa(code))
		c.Header("X-Error-Message", err.Error())
		c.JSON(http.StatusForbidden, gin.H{"code": code, "message": err.Error()})
		return
	}

	g.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.Status(http.StatusInternalServerError)
}
