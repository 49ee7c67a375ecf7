package catalog

import "errors"

var (
	ErrStandardNotFound = errors.New("standard not found")
	ErrStandardInactive = errors.New("standard is inactive")
	ErrParentNotFound   = errors.New("parent standard not found")
	ErrParentCycle      = errors.New("standard parent chain contains a cycle")
)
