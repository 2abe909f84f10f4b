package cli

import (
	"github.com/aetherid/console"
)

// Options are the global flags; exactly one command is selected.
type Options struct {
	console.ClientOptions
	Config  string `short:"c" long:"config" description:"options document URL (yaml or json)"`
	Verbose bool   `short:"v" long:"verbose" description:"log api calls and refresh events"`

	Login     LoginCommand     `command:"login" description:"log in and keep the credential in the store"`
	Logout    LogoutCommand    `command:"logout" description:"log out and clear the store"`
	WhoAmI    WhoAmICommand    `command:"whoami" description:"print the signed in user"`
	Get       GetCommand       `command:"get" description:"print the result of GET /api/PATH"`
	Orders    OrdersCommand    `command:"orders" description:"list or search orders"`
	Dashboard DashboardCommand `command:"dashboard" description:"print dashboard statistics"`
}

type LoginCommand struct {
	Username string `short:"n" long:"username" description:"user name"`
	Password string `short:"p" long:"password" description:"password"`
	Secret   string `long:"secret" description:"URL of a scy encrypted basic credential, used instead of username and password"`
	Key      string `long:"key" description:"scy key for the secret" default:"blowfish://default"`
}

type LogoutCommand struct{}

type WhoAmICommand struct{}

type GetCommand struct {
	Query map[string]string `short:"q" long:"query" description:"query parameter name:value"`
	Args  struct {
		Path string `positional-arg-name:"path" required:"yes"`
	} `positional-args:"yes"`
}

type OrdersCommand struct {
	Page    int    `long:"page" description:"zero based page"`
	Size    int    `long:"size" description:"page size" default:"10"`
	Keyword string `short:"k" long:"keyword" description:"search keyword"`
}

type DashboardCommand struct{}
