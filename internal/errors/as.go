package errors

import stderrors "errors"

// As достаёт OCRError из цепочки обёрток.
func As(err error) (*OCRError, bool) {
	var e *OCRError
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode сообщает, что в цепочке есть OCRError с указанным кодом.
func IsCode(err error, code ErrorCode) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
