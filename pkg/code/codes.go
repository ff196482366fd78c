package code

var (
	Success = NewSuccess(0, "success")

	ErrorInvalidParams  = NewError(10001, "invalid request parameters")
	ErrorServerInternal = NewError(10002, "internal server error")
	ErrorDBQuery        = NewError(10003, "database query failed")
	ErrorNotFoundAPI    = NewError(10004, "api not found")
	ErrorTooManyRequest = NewError(10005, "too many requests")

	ErrorItemNotFound  = NewError(20001, "item not found")
	ErrorSpaceNotFound = NewError(20002, "space not found")

	ErrorSessionNotFound = NewError(30001, "edit session not found")
	ErrorSessionClosed   = NewError(30002, "edit session already closed")
	ErrorDraftNotFound   = NewError(30003, "no open draft for item")
	ErrorDraftNotSavable = NewError(30004, "draft is not savable: title must not be empty")

	ErrorDeletePending = NewError(40001, "item already has a pending deletion")
)
