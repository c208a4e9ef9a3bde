package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/people"
)

type (
	MenuItem struct {
		Label string `json:"label"`
		Href  string `json:"href"`
	}

	// SessionResponse tells the web front end what to show. Role only gates UI controls:
	// the API itself does not enforce it.
	SessionResponse struct {
		AppName   string     `json:"app_name"`
		Role      string     `json:"role"`
		CanCreate bool       `json:"can_create"`
		CanDelete bool       `json:"can_delete"`
		Menu      []MenuItem `json:"menu"`
	}
)

func registerSessionAPI(g *echo.Group, conf *core.Config) {
	g.GET("/session", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, newSessionResponse(conf))
	})
}

func newSessionResponse(conf *core.Config) SessionResponse {
	menu := []MenuItem{{Label: "Home", Href: "/"}}
	for _, kind := range people.Kinds {
		menu = append(menu, MenuItem{Label: label(kind.Plural()), Href: "/list/" + kind.Plural()})
	}
	menu = append(menu, MenuItem{Label: "Stationary", Href: "/list/stationary"})

	return SessionResponse{
		AppName:   conf.AppName,
		Role:      conf.Role,
		CanCreate: conf.IsAdmin(),
		CanDelete: conf.IsAdmin(),
		Menu:      menu,
	}
}

func label(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
