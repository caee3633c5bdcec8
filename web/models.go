package web

import (
	"courtwatch/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server is the HTTP server that serves rankings and handles webhook requests
type Server struct {
	api *api.API
}
