package x

import (
	"context"
	"fmt"

	"github.com/swapsies/swapsies"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// extensions, so we can plug in another authentication system.
type Authenticator interface {
	// GetAddresses reveals all addresses authenticated for the call.
	GetAddresses(context.Context) []swapsies.Address
	// HasAddress checks if given address was authenticated.
	HasAddress(context.Context, swapsies.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators
func (m MultiAuth) GetAddresses(ctx context.Context) []swapsies.Address {
	var res []swapsies.Address
	for _, impl := range m.impls {
		res = append(res, impl.GetAddresses(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx context.Context, addr swapsies.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authenticated address if any, otherwise nil.
// This is the address an operation is performed as.
func MainSigner(ctx context.Context, auth Authenticator) swapsies.Address {
	addrs := auth.GetAddresses(ctx)
	if len(addrs) == 0 {
		return nil
	}
	return addrs[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx context.Context, auth Authenticator, required []swapsies.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// CtxAuth is an Authenticator that is using context to store and retrieve
// the authenticated addresses. The command line tool and the tests set the
// caller this way.
type CtxAuth struct {
	// Key used to set and retrieve addresses from the context. For
	// convinience only string type keys are allowed.
	Key string
}

var _ Authenticator = (*CtxAuth)(nil)

type ctxAuthKey string

// SetAddresses returns a context with given addresses authenticated. The
// first one is the main signer.
func (a *CtxAuth) SetAddresses(ctx context.Context, addrs ...swapsies.Address) context.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), addrs)
}

func (a *CtxAuth) GetAddresses(ctx context.Context) []swapsies.Address {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	addrs, ok := val.([]swapsies.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []swapsies.Address got %T", val))
	}
	return addrs
}

func (a *CtxAuth) HasAddress(ctx context.Context, addr swapsies.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
