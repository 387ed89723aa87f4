package ctxkeys

type Key int

const (
	Username  Key = iota // string: logged-in admin, "" when anonymous
	CSRFToken            // string: anti-forgery token, set only for same-origin requests
)
