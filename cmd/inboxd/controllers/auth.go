package controllers

import (
	"net/http"

	"github.com/inmoflow/inbox/cmd/inboxd/server"
	"github.com/inmoflow/inbox/common"
)

// PostLoginController authenticates against the upstream server and
// stores the session
func PostLoginController(req *server.Request) {
	email := req.HTTP.FormValue("email")
	password := req.HTTP.FormValue("password")

	if email == "" || password == "" {
		http.Error(req.Response, "email and password are required", 400)
		return
	}

	err := req.App.CredStore.Login(req.App.Config.ServerURL, email, password)
	if err != nil {
		req.App.Log.Errorf(common.MessageTopicGlobal, "login failed: %s", err)
		http.Error(req.Response, err.Error(), 403)
		return
	}

	req.App.Log.Infof(common.MessageTopicGlobal, "logged in as %s", req.App.CredStore.Email())
	req.Printf("logged in as %s\n", req.App.CredStore.Email())
}

// PostLogoutController clears the stored session
func PostLogoutController(req *server.Request) {
	err := req.App.CredStore.Clear()
	if err != nil {
		http.Error(req.Response, err.Error(), 500)
		return
	}

	req.App.Log.Info(common.MessageTopicGlobal, "logged out")
	req.Println("logged out")
}
