package errorbank

// Notice is a user-facing, non-fatal description of a failed operation.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// NoticeFrom converts err into a notice titled title. It returns nil for a nil error.
func NoticeFrom(title string, err error) *Notice {
	appErr := From(err)
	if appErr == nil {
		return nil
	}
	msg := appErr.Message()
	if appErr.cause != nil {
		msg = appErr.Error()
	}
	return &Notice{Title: title, Message: msg, Kind: appErr.Kind()}
}
