package checkout

import (
	"context"
	"strings"

	"hmade-storefront/internal/auth"
)

// VerifyGatewayReturn hands the query string the gateway redirected back with
// to the backend, which owns the signature check.
func VerifyGatewayReturn(ctx context.Context, api Backend, sess auth.Session, rawQuery string) (*GatewayResult, error) {
	rawQuery = strings.TrimPrefix(strings.TrimSpace(rawQuery), "?")
	if rawQuery == "" {
		return nil, ErrEmptyGatewayQuery
	}
	return api.VerifyGatewayReturn(ctx, sess, rawQuery)
}
