package http

import (
	"errors"

	"github.com/gatehouseauth/gatehouse/internal/auth/service"
)

// asFlow reports whether err is a flow failure whose message is safe
// to hand to the client verbatim.
func asFlow(err error) (*service.FlowError, bool) {
	var ferr *service.FlowError
	if errors.As(err, &ferr) {
		return ferr, true
	}
	return nil, false
}
