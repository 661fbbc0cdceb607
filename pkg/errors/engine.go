package errors

// EngineError is a specialized error type for failures surfaced by the
// engine facade: missing keys, codec corruption, index/record mismatches,
// and backend-mismatch configuration errors. It embeds baseError to inherit
// all the standard error functionality, then adds engine-specific fields
// that pinpoint exactly which key and log position were involved.
type EngineError struct {
	*baseError

	// key identifies which key was being operated on when the error
	// occurred, if any.
	key string

	// segmentNo and offset identify the log position involved, if any.
	segmentNo uint64
	offset    int64
}

// NewEngineError creates a new engine-specific error.
func NewEngineError(err error, code ErrorCode, msg string) *EngineError {
	return &EngineError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the EngineError type.
func (ee *EngineError) WithMessage(msg string) *EngineError {
	ee.baseError.WithMessage(msg)
	return ee
}

// WithCode sets the error code while preserving the EngineError type.
func (ee *EngineError) WithCode(code ErrorCode) *EngineError {
	ee.baseError.WithCode(code)
	return ee
}

// WithDetail adds contextual information while maintaining the EngineError type.
func (ee *EngineError) WithDetail(key string, value any) *EngineError {
	ee.baseError.WithDetail(key, value)
	return ee
}

// WithKey records which key was being processed when the error occurred.
func (ee *EngineError) WithKey(key string) *EngineError {
	ee.key = key
	return ee
}

// WithPosition records which log position was being processed when the error occurred.
func (ee *EngineError) WithPosition(segmentNo uint64, offset int64) *EngineError {
	ee.segmentNo = segmentNo
	ee.offset = offset
	return ee
}

// Key returns the key that was being processed.
func (ee *EngineError) Key() string {
	return ee.key
}

// SegmentNo returns the segment number that was being processed.
func (ee *EngineError) SegmentNo() uint64 {
	return ee.segmentNo
}

// Offset returns the byte offset that was being processed.
func (ee *EngineError) Offset() int64 {
	return ee.offset
}

// NewNotFoundError creates the canonical error for a remove against an absent key.
func NewNotFoundError(key string) *EngineError {
	return NewEngineError(nil, ErrorCodeNotFound, "key not found").WithKey(key)
}

// NewCodecError creates the canonical error for a malformed on-disk record.
func NewCodecError(err error, segmentNo uint64, offset int64) *EngineError {
	return NewEngineError(err, ErrorCodeCodecCorruption, "malformed record bytes").
		WithPosition(segmentNo, offset)
}

// NewUnexpectedRecordError creates the canonical error for an index entry
// that resolves to a record which is not a Set.
func NewUnexpectedRecordError(key string, segmentNo uint64, offset int64) *EngineError {
	return NewEngineError(nil, ErrorCodeUnexpectedRecord, "index entry does not point at a Set record").
		WithKey(key).
		WithPosition(segmentNo, offset)
}

// NewConfigurationError creates the canonical error for opening a data
// directory written by a different storage backend.
func NewConfigurationError(msg string) *EngineError {
	return NewEngineError(nil, ErrorCodeConfiguration, msg)
}
