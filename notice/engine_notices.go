package notice

// RuntimeExceptionInValidatorErrorNotice is generated when a rule panics
// instead of completing; the runner recovers the panic and reports it here
// so one failing rule never prevents the rest of the rule set from running.
type RuntimeExceptionInValidatorErrorNotice struct {
	*BaseNotice
}

func NewRuntimeExceptionInValidatorErrorNotice(validatorName string, message string) *RuntimeExceptionInValidatorErrorNotice {
	context := map[string]interface{}{
		"validatorName": validatorName,
		"exception":     message,
	}
	return &RuntimeExceptionInValidatorErrorNotice{
		BaseNotice: NewBaseNotice("runtime_exception_in_validator_error", ERROR, context),
	}
}

// RuntimeExceptionInLoaderErrorNotice is generated when the feed loader
// panics while reading the input; the engine recovers it into a notice
// instead of letting it propagate out of Validate.
type RuntimeExceptionInLoaderErrorNotice struct {
	*BaseNotice
}

func NewRuntimeExceptionInLoaderErrorNotice(message string) *RuntimeExceptionInLoaderErrorNotice {
	context := map[string]interface{}{
		"exception": message,
	}
	return &RuntimeExceptionInLoaderErrorNotice{
		BaseNotice: NewBaseNotice("runtime_exception_in_loader_error", ERROR, context),
	}
}

// MalformedJSONNotice is generated when locations.geojson cannot be parsed as JSON.
type MalformedJSONNotice struct {
	*BaseNotice
}

func NewMalformedJSONNotice(filename string, message string) *MalformedJSONNotice {
	context := map[string]interface{}{
		"filename": filename,
		"message":  message,
	}
	return &MalformedJSONNotice{
		BaseNotice: NewBaseNotice("malformed_json", ERROR, context),
	}
}

// InvalidInputNotice maps the parser.InputError taxonomy (missing path,
// invalid zip, unreadable member, ...) to a single notice shape since each
// variant only differs by its reason string.
type InvalidInputNotice struct {
	*BaseNotice
}

func NewInvalidInputNotice(reason string, detail string) *InvalidInputNotice {
	context := map[string]interface{}{
		"reason": reason,
		"detail": detail,
	}
	return &InvalidInputNotice{
		BaseNotice: NewBaseNotice("invalid_input", ERROR, context),
	}
}
