package model

import "errors"

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrCategoryMismatch = errors.New("part category does not match slot")
	ErrInvalidSpec      = errors.New("invalid spec")
	ErrInvalidPart      = errors.New("invalid part")
	ErrInvalidRule      = errors.New("invalid rule")
	ErrInvalidFacet     = errors.New("invalid facet definition")
	ErrPartNotFound     = errors.New("part not found")
	ErrInvalidArgument  = errors.New("invalid argument")
)
