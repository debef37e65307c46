package publicauth

import (
	"net/http"

	"github.com/louisbranch/earlypay/internal/services/web/platform/httpx"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLoginSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.LoginValidate, h.handleLoginValidate)
	mux.HandleFunc(http.MethodGet+" "+routepath.Signup, h.handleSignupPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Signup, h.handleSignupSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.SignupValidate, h.handleSignupValidate)
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	for _, path := range []string{routepath.LoginValidate, routepath.SignupValidate, routepath.Logout} {
		mux.HandleFunc(http.MethodGet+" "+path, httpx.MethodNotAllowed(http.MethodPost))
	}
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
