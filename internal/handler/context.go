package handler

type ContextKey string

var (
	SubCtxKey         ContextKey = "sub"
	CurrentUserCtxKey ContextKey = "currentUser"
	UserInfoCtxKey    ContextKey = "userInfo"
	CustomerCtxKey    ContextKey = "customer"
	ProjectCtxKey     ContextKey = "project"
	QuotationCtxKey   ContextKey = "quotation"
	MaterialCtxKey    ContextKey = "material"
)
