package utils

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// IsNotFound reports whether err means the requested entity no longer
// exists on the platform.
func IsNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// IsForbidden reports whether err is a permission failure.
func IsForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusForbidden
	}
	return false
}
