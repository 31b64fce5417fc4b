package path

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	rootByte        = '$'
	dotByte         = '.'
	commaByte       = ','
	beginArrayByte  = '['
	endArrayByte    = ']'
	leftBracketByte = '('
	rightBracketByte = ')'
	doubleQuoteByte = '"'
	wildcardByte    = '*'
	minusByte       = '-'
)

const (
	lastKeyword = "last"
	toKeyword   = "to"

	countKeyword = "count"
	sizeKeyword  = "size"
	typeKeyword  = "type"
)

// parser is a hand-written recursive-descent scanner over the path
// grammar, grounded on PathParser in
// _examples/original_source/src/path/parse.rs.
type parser struct {
	input []byte
	pos   int
	steps []Step
}

// Parse parses a path expression string (must begin with "$").
func Parse(input string) (*Expression, error) {
	p := &parser{input: []byte(input)}
	return p.parse()
}

func (p *parser) parse() (*Expression, error) {
	p.skip(func(b byte) bool { return b == ' ' })
	if c, ok := p.pop(); !ok || c != rootByte {
		return nil, newParseError(NotStartWithDollar, p.pos)
	}
	p.pushStep(Step{Kind: StepRoot})

	p.eatWhitespace()
	for !p.exhausted() {
		c, _ := p.pop()
		switch c {
		case beginArrayByte:
			if err := p.parseArrayStep(); err != nil {
				return nil, err
			}
		case dotByte:
			if b, ok := p.peek(); ok && b == dotByte {
				if err := p.parseDescendentStep(); err != nil {
					return nil, err
				}
			} else {
				if err := p.parseObjectStep(); err != nil {
					return nil, err
				}
			}
		default:
			return nil, newParseError(InvalidCharacterAtStepStart, p.pos)
		}
		p.eatWhitespace()
	}

	return newExpression(p.steps), nil
}

func (p *parser) parseArrayStep() error {
	p.eatWhitespace()

	b, ok := p.peek()
	switch {
	case ok && b == endArrayByte:
		return newParseError(EmptyArrayStep, p.pos)
	case !ok:
		return newParseError(MissingSquareBracket, p.pos)
	case b == wildcardByte:
		p.advance(1)
		p.pushStep(Step{Kind: StepArray, Array: ArrayStep{Kind: ArrayWildcard}})
	default:
		steps, err := p.parseArrayCell()
		if err != nil {
			return err
		}
		if len(steps) == 1 {
			s := steps[0]
			if s.IsRange {
				p.pushStep(Step{Kind: StepArray, Array: ArrayStep{Kind: ArrayRange, Begin: s.Begin, End: s.End}})
			} else if s.Single.Last {
				p.pushStep(Step{Kind: StepArray, Array: ArrayStep{Kind: ArrayLast, Last: s.Single.Value}})
			} else {
				p.pushStep(Step{Kind: StepArray, Array: ArrayStep{Kind: ArrayIndex, Index: s.Single.Value}})
			}
		} else {
			p.pushStep(Step{Kind: StepArray, Array: ArrayStep{Kind: ArrayMultiple, Multiple: steps}})
		}
	}

	p.eatWhitespace()
	if c, ok := p.pop(); !ok || c != endArrayByte {
		return newParseError(MissingSquareBracket, p.pos)
	}
	return nil
}

func (p *parser) parseArrayCell() ([]SingleStep, error) {
	var steps []SingleStep
	for {
		begin, err := p.parseLastOrIndex()
		if err != nil {
			return nil, err
		}

		p.eatWhitespace()
		if p.hasKeyword(toKeyword) {
			p.advance(len(toKeyword))
			p.eatWhitespace()

			end, err := p.parseLastOrIndex()
			if err != nil {
				return nil, err
			}
			steps = append(steps, SingleStep{IsRange: true, Begin: begin, End: end})
		} else {
			steps = append(steps, SingleStep{Single: begin})
		}

		p.eatWhitespace()
		if b, ok := p.peek(); ok && b == commaByte {
			p.advance(1)
			p.eatWhitespace()
		} else {
			break
		}
	}
	return steps, nil
}

func (p *parser) parseLastOrIndex() (SingleIndex, error) {
	if p.hasKeyword(lastKeyword) {
		return p.parseArrayLast()
	}
	return p.parseArrayIndex()
}

func (p *parser) parseArrayLast() (SingleIndex, error) {
	p.advance(len(lastKeyword))
	p.eatWhitespace()

	b, ok := p.peek()
	switch {
	case ok && b == minusByte:
		p.advance(1)
		p.eatWhitespace()
		if c, ok := p.peek(); ok && isASCIIDigit(c) {
			v, err := p.parseIndex()
			if err != nil {
				return SingleIndex{}, err
			}
			return SingleIndex{Last: true, Value: v}, nil
		}
		return SingleIndex{}, newParseError(ArrayStepSyntaxError, p.pos+1)
	case !ok:
		return SingleIndex{}, newParseError(MissingSquareBracket, p.pos)
	default:
		return SingleIndex{Last: true, Value: 0}, nil
	}
}

func (p *parser) parseArrayIndex() (SingleIndex, error) {
	b, ok := p.peek()
	switch {
	case ok && isASCIIDigit(b):
		v, err := p.parseIndex()
		if err != nil {
			return SingleIndex{}, err
		}
		return SingleIndex{Value: v}, nil
	case !ok:
		return SingleIndex{}, newParseError(MissingSquareBracket, p.pos)
	default:
		return SingleIndex{}, newParseError(ArrayStepSyntaxError, p.pos+1)
	}
}

func (p *parser) parseIndex() (int, error) {
	begin := p.pos
	p.skip(isASCIIDigit)
	digits := p.input[begin:p.pos]

	res := 0
	for _, c := range digits {
		res = res*10 + int(c-'0')
		if res > math.MaxInt32 {
			return 0, newParseError(ArrayIndexTooLong, begin+1)
		}
	}
	return res, nil
}

func (p *parser) parseObjectStep() error {
	p.eatWhitespace()
	b, ok := p.peek()
	switch {
	case !ok:
		return newParseError(InvalidKeyStep, p.pos)
	case b == wildcardByte:
		p.advance(1)
		p.pushStep(Step{Kind: StepObject, Object: ObjectStep{Kind: ObjectWildcard}})
		return nil
	case b == doubleQuoteByte:
		return p.parseQuotedFieldName(false)
	default:
		return p.parseUnquotedFieldName(false)
	}
}

func (p *parser) parseDescendentStep() error {
	p.advance(1) // consume second '.'
	p.eatWhitespace()
	b, ok := p.peek()
	switch {
	case ok && b == doubleQuoteByte:
		return p.parseQuotedFieldName(true)
	case !ok:
		return newParseError(InvalidKeyStep, p.pos)
	default:
		return p.parseUnquotedFieldName(true)
	}
}

func (p *parser) parseEscape(buf *strings.Builder) error {
	c, ok := p.pop()
	if !ok {
		return newParseError(UnclosedQuotedStep, p.pos)
	}
	switch c {
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case '"':
		buf.WriteByte('"')
	case '/':
		buf.WriteByte('/')
	case '\\':
		buf.WriteByte('\\')
	case 'u':
		r, err := p.parseUnicodeEscape()
		if err != nil {
			return err
		}
		buf.WriteRune(r)
	default:
		return newParseError(InvalidEscapeSequence, p.pos)
	}
	return nil
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	if p.pos+4 > len(p.input) {
		return 0, newParseError(InvalidEscapeSequence, p.pos)
	}
	start := p.pos
	n := 0
	for i := 0; i < 4; i++ {
		v, ok := hexVal(p.input[p.pos])
		if !ok {
			return 0, newParseError(InvalidEscapeSequence, start)
		}
		n = (n << 4) + v
		p.pos++
	}
	if n >= 0xD800 && n <= 0xDFFF {
		return 0, newParseError(InvalidEscapeSequence, start)
	}
	if !utf8.ValidRune(rune(n)) {
		return 0, newParseError(InvalidEscapeSequence, start)
	}
	return rune(n), nil
}

func (p *parser) parseQuotedFieldName(descendent bool) error {
	p.advance(1) // consume opening quote

	var buf strings.Builder
	begin := p.pos
	hasEscape := false

	for {
		c, ok := p.pop()
		switch {
		case ok && c == '\\':
			buf.WriteString(string(p.input[begin : p.pos-1]))
			hasEscape = true
			if err := p.parseEscape(&buf); err != nil {
				return err
			}
			begin = p.pos
		case ok && c == doubleQuoteByte:
			var key string
			if !hasEscape {
				key = string(p.input[begin : p.pos-1])
			} else {
				buf.WriteString(string(p.input[begin : p.pos-1]))
				key = buf.String()
			}
			if !utf8.ValidString(key) {
				return newParseError(InvalidKeyStep, p.pos)
			}
			if descendent {
				p.pushStep(Step{Kind: StepDescendent, Descendent: key})
			} else {
				p.pushStep(Step{Kind: StepObject, Object: ObjectStep{Kind: ObjectKey, Key: key}})
			}
			return nil
		case !ok:
			return newParseError(UnclosedQuotedStep, p.pos)
		}
	}
}

func (p *parser) parseUnquotedFieldName(descendent bool) error {
	p.eatWhitespace()
	b, ok := p.peek()
	if !ok || !isASCIIAlpha(b) {
		return newParseError(InvalidKeyStep, p.pos+1)
	}

	begin := p.pos
	p.skip(func(b byte) bool { return isASCIIAlpha(b) || isASCIIDigit(b) })
	end := p.pos

	if descendent {
		key := string(p.input[begin:end])
		p.pushStep(Step{Kind: StepDescendent, Descendent: key})
		return nil
	}

	p.eatWhitespace()
	next, hasNext := p.peek()
	switch {
	case hasNext && next == leftBracketByte:
		fieldName := p.input[begin:end]
		return p.parseItemMethod(fieldName, begin+1)
	case !hasNext || next == dotByte || next == beginArrayByte:
		key := string(p.input[begin:end])
		p.pushStep(Step{Kind: StepObject, Object: ObjectStep{Kind: ObjectKey, Key: key}})
		return nil
	default:
		return newParseError(UnexpectedCharacterAtEnd, p.pos+1)
	}
}

func (p *parser) parseItemMethod(fieldName []byte, beginPos int) error {
	p.advance(1) // consume '('
	p.eatWhitespace()

	b, ok := p.peek()
	if !ok || b != rightBracketByte {
		return newParseError(InvalidFunction, beginPos)
	}
	p.advance(1)
	p.eatWhitespace()

	if !p.exhausted() {
		return newParseError(UnexpectedCharacterAtEnd, p.pos+1)
	}

	switch string(fieldName) {
	case countKeyword:
		p.pushStep(Step{Kind: StepFunc, Func: FuncCount})
	case sizeKeyword:
		p.pushStep(Step{Kind: StepFunc, Func: FuncSize})
	case typeKeyword:
		p.pushStep(Step{Kind: StepFunc, Func: FuncType})
	default:
		return newParseError(InvalidFunction, beginPos)
	}
	return nil
}

func (p *parser) pushStep(s Step) { p.steps = append(p.steps, s) }

func (p *parser) remain() []byte {
	if p.pos < len(p.input) {
		return p.input[p.pos:]
	}
	return nil
}

func (p *parser) eatWhitespace() {
	p.skip(func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' })
}

func (p *parser) exhausted() bool { return p.pos >= len(p.input) }

func (p *parser) pop() (byte, bool) {
	if p.exhausted() {
		return 0, false
	}
	v := p.input[p.pos]
	p.pos++
	return v, true
}

func (p *parser) peek() (byte, bool) {
	if p.exhausted() {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) advance(n int) { p.pos += n }

func (p *parser) skip(f func(byte) bool) {
	n := 0
	for _, b := range p.remain() {
		if !f(b) {
			break
		}
		n++
	}
	p.advance(n)
}

func (p *parser) hasKeyword(keyword string) bool {
	rem := p.remain()
	if len(rem) < len(keyword) {
		return false
	}
	return string(rem[:len(keyword)]) == keyword
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }
func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hexVal(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
