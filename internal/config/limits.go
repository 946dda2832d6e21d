package config

import "time"

const (
	// MaxNameLength bounds workspace, folder, note, server and user names.
	MaxNameLength = 50

	// DefaultPageLimit is used when a list request carries no limit.
	DefaultPageLimit = 20

	// MaxPageLimit caps the page size of list requests.
	MaxPageLimit = 100
)

const (
	// AccessTokenTTL is the lifetime of tokens with the api audience.
	AccessTokenTTL = time.Hour

	// RefreshTokenTTL is the lifetime of tokens with the auth audience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// OAuthCookieMaxAge bounds how long a started login may take.
	OAuthCookieMaxAge = 10 * time.Minute
)
