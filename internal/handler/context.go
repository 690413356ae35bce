package handler

type ContextKey string

var (
	RoleCtxKey       ContextKey = "role"
	SubCtxKey        ContextKey = "sub"
	SetupTemplateCtx ContextKey = "setupTemplate"
	WeeklySetupCtx   ContextKey = "weeklySetup"
)
