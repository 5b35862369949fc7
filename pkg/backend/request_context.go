package backend

// RequestContext is the per-request caller identity handed to every
// outbound call. An empty BearerToken means the call is anonymous.
type RequestContext struct {
	BearerToken string
	RequestID   string
}

func Anonymous() RequestContext {
	return RequestContext{}
}

func (rc RequestContext) WithToken(token string) RequestContext {
	rc.BearerToken = token
	return rc
}

func (rc RequestContext) Authenticated() bool {
	return rc.BearerToken != ""
}
