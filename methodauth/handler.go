package methodauth

import (
	"context"

	"github.com/skillsenselab/authkit/di"
	"github.com/skillsenselab/authkit/errors"
)

// DeniedHandler decides the user-visible outcome when a before-call or
// after-call rule evaluates to denied. It returns the value the guarded call
// should produce instead, or an error to propagate.
type DeniedHandler interface {
	HandleDenied(ctx context.Context, denial error) (any, error)
}

// ThrowingDeniedHandler is the built-in default handler: it propagates the
// denial as an ACCESS_DENIED error without substituting a value.
type ThrowingDeniedHandler struct{}

// HandleDenied implements DeniedHandler.
func (ThrowingDeniedHandler) HandleDenied(_ context.Context, denial error) (any, error) {
	if denial == nil {
		denial = errors.AccessDenied("")
	}
	return nil, denial
}

// DefaultHandlerType is the type name a denied-handler marker uses to
// designate the built-in default handler explicitly.
var DefaultHandlerType = di.TypeName(ThrowingDeniedHandler{})

// handlerResolver resolves denied-handler type names to instances. The
// default handler type short-circuits to one shared instance; anything else
// is looked up in the component container and must match exactly one
// registration. Successful resolutions are memoized per type name.
type handlerResolver struct {
	container      di.Container
	defaultHandler DeniedHandler
	cache          *onceCache[string, DeniedHandler]
}

func newHandlerResolver(container di.Container, defaultHandler DeniedHandler) *handlerResolver {
	if defaultHandler == nil {
		defaultHandler = ThrowingDeniedHandler{}
	}
	return &handlerResolver{
		container:      container,
		defaultHandler: defaultHandler,
		cache:          newOnceCache[string, DeniedHandler](false),
	}
}

// resolve returns the handler instance for a denied-handler type name. An
// empty name means no designation and yields the default handler.
func (r *handlerResolver) resolve(handlerType string) (DeniedHandler, error) {
	if handlerType == "" || handlerType == DefaultHandlerType {
		return r.defaultHandler, nil
	}

	handler, _, err := r.cache.getOrCompute(handlerType, func() (DeniedHandler, error) {
		return r.lookup(handlerType)
	})
	return handler, err
}

func (r *handlerResolver) lookup(handlerType string) (DeniedHandler, error) {
	if r.container == nil {
		return nil, errors.HandlerNotFound(handlerType)
	}
	keys := r.container.KeysForType(handlerType)
	switch len(keys) {
	case 0:
		return nil, errors.HandlerNotFound(handlerType)
	case 1:
	default:
		return nil, errors.HandlerAmbiguous(handlerType, keys)
	}

	instance, err := r.container.Resolve(keys[0])
	if err != nil {
		return nil, errors.HandlerInvalid(handlerType, err.Error())
	}
	handler, ok := instance.(DeniedHandler)
	if !ok {
		return nil, errors.HandlerInvalid(handlerType, "registered instance does not implement DeniedHandler")
	}
	return handler, nil
}
