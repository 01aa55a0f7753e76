package app

import (
	"github.com/nationalarchives/ctd-nfs/internal/appcontext"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
