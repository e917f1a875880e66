package parser

// ErrClass separates ordinary rule violations from structural failures
// raised by the tokenizer (unterminated quotes or tags).
type ErrClass int

const (
	ErrClassNone ErrClass = iota
	ErrClassSyntax
	ErrClassStructural
)

// Parameter keys used in ParseResult.Params.
const (
	ParamID          = "id"
	ParamTitle       = "title"
	ParamDescription = "description"
	ParamFilter      = "filter"
	ParamTags        = "tags"
)

// ParseResult is the outcome of parsing one line. It is constructed once and
// never mutated. An invalid result always carries a non-empty Err and an
// empty Params map.
type ParseResult struct {
	Valid    bool
	Command  CommandType
	Params   map[string]any
	Err      string
	ErrClass ErrClass
}

func valid(cmd CommandType, params map[string]any) ParseResult {
	if params == nil {
		params = map[string]any{}
	}
	return ParseResult{Valid: true, Command: cmd, Params: params}
}

func invalid(cmd CommandType, msg string) ParseResult {
	return ParseResult{Command: cmd, Params: map[string]any{}, Err: msg, ErrClass: ErrClassSyntax}
}

func structural(msg string) ParseResult {
	return ParseResult{Command: CommandUnknown, Params: map[string]any{}, Err: msg, ErrClass: ErrClassStructural}
}

// ID returns the integer task identifier parameter, or 0 if absent.
func (r ParseResult) ID() int {
	id, _ := r.Params[ParamID].(int)
	return id
}

// Title returns the title parameter, or "" if absent.
func (r ParseResult) Title() string {
	s, _ := r.Params[ParamTitle].(string)
	return s
}

// Description returns the description parameter and whether it was provided.
func (r ParseResult) Description() (string, bool) {
	s, ok := r.Params[ParamDescription].(string)
	return s, ok
}

// Filter returns the list filter parameter and whether it was provided.
func (r ParseResult) Filter() (string, bool) {
	s, ok := r.Params[ParamFilter].(string)
	return s, ok
}

// Tags returns the tag parameters with their angle brackets stripped.
func (r ParseResult) Tags() []string {
	tags, _ := r.Params[ParamTags].([]string)
	return tags
}
