package api

// Package api is the HTTP transport for the posterity server endpoints. Every
// call returns a Result that is either a complete response (status and body)
// or a transport failure; classification of status codes is left to callers.
