// parser.go — recursive-descent statement parser with Pratt-precedence
// expression parsing.
//
// A pull-iterator over tokens with a small lookahead buffer, per-production
// error wrapping into a sentinel node plus a diagnostics slice instead of
// panics (`NodeError`/`InvalidNode`), and a left-associative
// precedence-climbing expression loop keyed by a string-to-int table
// (`Precedence`). The postfix `.`-chain dispatch (`.<number>` → index,
// `.<identifier>` → property) is handled by `parsePostfix`, dispatching to
// dedicated ArrayIndexExpressionNode/PropertyAccessExpressionNode types.
package zr

import "fmt"

// ParserOptions configures a Parser as a plain struct value, keeping
// configuration out of global mutable state.
type ParserOptions struct {
	Lexer LexerOptions
}

// Parser consumes a token stream and builds a Source tree, accumulating
// NodeErrors rather than failing outright.
type Parser struct {
	lexer          *Lexer
	src            string
	buf            []Token
	errors         []*NodeError
	pendingCluster []Node
}

// NewParser creates a Parser over src with the given options.
func NewParser(src string, opts ParserOptions) *Parser {
	return &Parser{lexer: NewLexer(src, opts.Lexer), src: src}
}

// Parse is the package's main entry point: it reads statements until EOF
// and always returns a non-nil Source, never a nil root, regardless of how
// many diagnostics accumulate along the way.
func Parse(source string, opts ParserOptions) (*SourceNode, []*NodeError) {
	p := NewParser(source, opts)
	root := p.parseSource()
	return root, p.errors
}

// ParseInteractive behaves like Parse but additionally reports whether the
// input looks like a valid prefix of a longer program rather than
// malformed input — every unclosed block/bracket/paren diagnostic is
// reclassified as DiagIncomplete, and the input counts as incomplete only
// when all diagnostics are of those kinds. This lets a REPL distinguish
// "keep reading" from "this line is actually wrong".
func ParseInteractive(source string, opts ParserOptions) (*SourceNode, []*NodeError, bool) {
	root, errs := Parse(source, opts)
	if len(errs) == 0 {
		return root, errs, false
	}
	incomplete := true
	for _, e := range errs {
		switch e.ErrorKind {
		case ErrUnclosedBlock, ErrUnclosedBracket, ErrUnclosedParen:
			e.Diag = DiagIncomplete
		default:
			incomplete = false
		}
	}
	return root, errs, incomplete
}

// Errors returns the diagnostics accumulated by the most recent parse.
func (p *Parser) Errors() []*NodeError { return p.errors }

// ----- token stream plumbing -----

// logicalNext pulls one token from the lexer, transparently absorbing a
// line-continuation pair: a Special "\" immediately followed by an
// EndOfStatement "\n" is consumed silently and never surfaces to callers.
// This is the only place "\" is interpreted outside string escapes.
func (p *Parser) logicalNext() Token {
	for {
		raw := p.lexer.Next()
		if raw.Kind == TokSpecial && raw.Text == "\\" &&
			p.lexer.Peek().Kind == TokEndOfStatement && p.lexer.Peek().Text == "\n" {
			p.lexer.Next()
			continue
		}
		return raw
	}
}

func (p *Parser) fill(n int) {
	for len(p.buf) < n {
		p.buf = append(p.buf, p.logicalNext())
	}
}

// peekAt returns the logical token offset tokens ahead (0 = next).
func (p *Parser) peekAt(offset int) Token {
	p.fill(offset + 1)
	return p.buf[offset]
}

func (p *Parser) peek() Token { return p.peekAt(0) }

func (p *Parser) next() Token {
	p.fill(1)
	t := p.buf[0]
	p.buf = p.buf[1:]
	return t
}

func (p *Parser) skipEndOfStatements() {
	for p.peek().Kind == TokEndOfStatement {
		p.next()
	}
}

// ----- diagnostics helpers -----

func (p *Parser) raiseOn(node Node, kind ErrorKind, msg string) {
	p.errors = append(p.errors, &NodeError{Node: node, Message: msg, ErrorKind: kind, Diag: DiagParse})
}

// invalid wraps expr (which may be nil) into an InvalidNode and records
// the matching diagnostic.
func (p *Parser) invalid(expr Node, kind ErrorKind, msg string, start, end int) *InvalidNode {
	n := NewInvalidNode(expr, msg, start, end)
	p.raiseOn(n, kind, msg)
	return n
}

// flagUnclosed adds NodeHasError to an already-built composite (block,
// array, object, parenthesized expression, call) whose closing delimiter
// was never found, and records the matching diagnostic, without
// discarding the composite's own concrete type.
func (p *Parser) flagUnclosed(node Node, kind ErrorKind, msg string) {
	node.addFlags(NodeHasError)
	p.raiseOn(node, kind, msg)
}

// ----- top level -----

func (p *Parser) parseSource() *SourceNode {
	start := 0
	var statements []Node
	p.skipEndOfStatements()
	for p.peek().Kind != TokEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			statements = append(statements, stmt)
		}
		p.skipEndOfStatements()
	}
	return NewSourceNode(statements, start, len(p.src))
}

func (p *Parser) parseStatement() Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokKeyword && tok.Text == "function":
		return p.parseFunctionDeclaration()
	case tok.Kind == TokKeyword && tok.Text == "if":
		return p.parseIfStatement()
	case tok.Kind == TokKeyword && tok.Text == "for":
		return p.parseForInStatement()
	case tok.Kind == TokSpecial && tok.Text == "{":
		return p.parseBlock()
	case tok.Kind == TokIdentifier && p.peekAt(1).Kind == TokOperator && p.peekAt(1).Text == "=":
		return p.parseVariableStatement()
	case tok.Kind == TokEOF:
		return nil
	default:
		return p.parseCommandStatement()
	}
}

// ----- function declaration -----

func (p *Parser) parseFunctionDeclaration() Node {
	kw := p.next() // "function"
	if p.peek().Kind != TokIdentifier {
		bad := p.peek()
		return p.invalid(nil, ErrUnexpectedToken, "expected a function name after 'function'", kw.Start, bad.End)
	}
	nameTok := p.next()
	name := NewIdentifierNode(nameTok.Text, nameTok.Start, nameTok.End)

	if !(p.peek().Kind == TokSpecial && p.peek().Text == "(") {
		bad := p.peek()
		return p.invalid(name, ErrUnexpectedToken, "expected '(' after function name", kw.Start, bad.End)
	}
	p.next() // "("

	var params []*ParameterNode
	for !(p.peek().Kind == TokSpecial && p.peek().Text == ")") && p.peek().Kind != TokEOF {
		params = append(params, p.parseParameter())
		if p.peek().Kind == TokSpecial && p.peek().Text == "," {
			p.next()
			continue
		}
		break
	}
	closeParen := p.peek()
	if closeParen.Kind == TokSpecial && closeParen.Text == ")" {
		p.next()
	} else {
		p.raiseOn(name, ErrUnclosedParen, "unclosed parameter list")
	}

	body := p.parseBlockRequired(kw.Start)
	_, bodyEnd := body.Span()
	return NewFunctionDeclarationNode(name, params, body, kw.Start, bodyEnd)
}

func (p *Parser) parseParameter() *ParameterNode {
	nameTok := p.peek()
	var name *IdentifierNode
	if nameTok.Kind == TokIdentifier || (nameTok.Kind == TokString && nameTok.Quote == 0) {
		p.next()
		name = NewIdentifierNode(nameTok.Text, nameTok.Start, nameTok.End)
	} else {
		p.next()
		name = NewIdentifierNode(nameTok.Text, nameTok.Start, nameTok.End)
		p.raiseOn(name, ErrUnexpectedToken, "expected a parameter name")
	}
	var typ *TypeReferenceNode
	if p.peek().Kind == TokSpecial && p.peek().Text == ":" {
		p.next()
		typeTok := p.peek()
		if typeTok.Kind == TokKeyword || typeTok.Kind == TokString || typeTok.Kind == TokIdentifier {
			p.next()
			typeID := NewIdentifierNode(typeTok.Text, typeTok.Start, typeTok.End)
			typ = NewTypeReferenceNode(typeID, typeTok.Start, typeTok.End)
			if !TypeKeywords[typeTok.Text] {
				p.raiseOn(typ, ErrUnexpectedToken, fmt.Sprintf("unknown type name %q", typeTok.Text))
			}
		}
	}
	start, end := name.Span()
	if typ != nil {
		_, end = typ.Span()
	}
	return NewParameterNode(name, typ, start, end)
}

// ----- if / for / block -----

func (p *Parser) parseIfStatement() Node {
	kw := p.next() // "if"
	cond := p.parseExpression(0)
	then := p.parseThenBranch()
	var els Node
	if p.peek().Kind == TokKeyword && p.peek().Text == "else" {
		p.next()
		if p.peek().Kind == TokKeyword && p.peek().Text == "if" {
			els = p.parseIfStatement()
		} else {
			els = p.parseThenBranch()
		}
	}
	end := kw.End
	if then != nil {
		_, end = then.Span()
	}
	if els != nil {
		_, end = els.Span()
	}
	return NewIfStatementNode(cond, then, els, kw.Start, end)
}

// parseThenBranch implements either a Block via {…} or a single statement
// via : colon.
func (p *Parser) parseThenBranch() Node {
	tok := p.peek()
	if tok.Kind == TokSpecial && tok.Text == "{" {
		return p.parseBlock()
	}
	if tok.Kind == TokSpecial && tok.Text == ":" {
		p.next()
		return p.parseStatement()
	}
	return p.invalid(nil, ErrMissingExpression, "expected '{' or ':' to introduce a statement body", tok.Start, tok.End)
}

func (p *Parser) parseForInStatement() Node {
	kw := p.next() // "for"
	if p.peek().Kind != TokIdentifier {
		bad := p.peek()
		return p.invalid(nil, ErrUnexpectedToken, "expected a loop variable after 'for'", kw.Start, bad.End)
	}
	idTok := p.next()
	initializer := NewIdentifierNode(idTok.Text, idTok.Start, idTok.End)

	if !(p.peek().Kind == TokKeyword && p.peek().Text == "in") {
		bad := p.peek()
		return p.invalid(initializer, ErrUnexpectedToken, "expected 'in' after loop variable", kw.Start, bad.End)
	}
	p.next() // "in"

	expr := p.parseExpression(0)
	body := p.parseBlockRequired(kw.Start)
	_, end := body.Span()
	forIn := NewForInStatementNode(initializer, expr, body, kw.Start, end)
	if idTok.Flags.Has(FlagInvalidName) {
		return p.invalid(forIn, ErrInvalidVariableName, "invalid variable name after '$'", idTok.Start, idTok.End)
	}
	return forIn
}

func (p *Parser) parseBlock() *BlockNode {
	open := p.next() // "{"
	var stmts []Node
	p.skipEndOfStatements()
	for {
		tok := p.peek()
		if tok.Kind == TokSpecial && tok.Text == "}" {
			break
		}
		if tok.Kind == TokEOF {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipEndOfStatements()
	}
	end := open.End
	closer := p.peek()
	if closer.Kind == TokSpecial && closer.Text == "}" {
		p.next()
		end = closer.End
	}
	block := NewBlockNode(stmts, open.Start, end)
	if !(closer.Kind == TokSpecial && closer.Text == "}") {
		p.flagUnclosed(block, ErrUnclosedBlock, "unclosed block")
	}
	return block
}

// parseBlockRequired parses a block, emitting a diagnostic (but still
// returning a usable empty block) if "{" is missing entirely, since
// ForInStatement.Statement and FunctionDeclaration.Body are always a
// Block.
func (p *Parser) parseBlockRequired(contextStart int) *BlockNode {
	if p.peek().Kind == TokSpecial && p.peek().Text == "{" {
		return p.parseBlock()
	}
	bad := p.peek()
	block := NewBlockNode(nil, bad.Start, bad.Start)
	p.flagUnclosed(block, ErrUnexpectedToken, "expected a block body")
	return block
}

// ----- variable statement -----

func (p *Parser) parseVariableStatement() Node {
	idTok := p.next()
	p.next() // "="
	expr := p.parseExpression(0)
	id := NewIdentifierNode(idTok.Text, idTok.Start, idTok.End)
	var exprEnd int
	if expr != nil {
		_, exprEnd = expr.Span()
	} else {
		exprEnd = idTok.End
	}
	decl := NewVariableDeclarationNode(id, expr, idTok.Start, exprEnd)
	stmt := NewVariableStatementNode(decl, idTok.Start, exprEnd)
	if idTok.Flags.Has(FlagInvalidName) {
		return p.invalid(stmt, ErrInvalidVariableName, "invalid variable name after '$'", idTok.Start, idTok.End)
	}
	return stmt
}

// ----- command statement -----

func (p *Parser) parseCommandStatement() Node {
	left := p.parseCommandStatementCore()
	return p.foldCommandBoundary(left)
}

func (p *Parser) foldCommandBoundary(left Node) Node {
	for {
		tok := p.peek()
		if tok.Kind != TokOperator || !CommandBoundaryOperators[tok.Text] {
			break
		}
		opTok := p.next()
		opNode := NewOperatorTokenNode(opTok.Text, opTok.Start, opTok.End)
		right := p.parseCommandStatementCore()
		ls, _ := left.Span()
		_, re := right.Span()
		left = NewBinaryExpressionNode(left, opNode, right, ls, re)
	}
	return left
}

func (p *Parser) isCommandTerminator(tok Token) bool {
	if tok.Kind == TokEOF || tok.Kind == TokEndOfStatement {
		return true
	}
	if tok.Kind == TokOperator && CommandBoundaryOperators[tok.Text] {
		return true
	}
	if tok.Kind == TokSpecial && (tok.Text == "}" || tok.Text == ")" || tok.Text == "]") {
		return true
	}
	return false
}

func (p *Parser) parseCommandStatementCore() Node {
	nameTok := p.next()
	unterm := nameTok.Kind == TokString && nameTok.Flags.Has(FlagUnterminatedString)
	nameStr := NewStringNode(nameTok.Text, nameTok.Quote, unterm, nameTok.Start, nameTok.End)
	cmdName := NewCommandNameNode(nameStr, nameTok.Start, nameTok.End)
	if nameTok.Kind != TokString {
		p.raiseOn(cmdName, ErrUnexpectedToken, fmt.Sprintf("expected a command name, found %s", nameTok.Kind))
	}

	var args []Node
	end := nameTok.End
	for {
		tok := p.peek()
		if p.isCommandTerminator(tok) {
			break
		}
		arg := p.parseCommandArgument()
		if arg != nil {
			args = append(args, arg)
			_, end = arg.Span()
		}
		if len(p.pendingCluster) > 0 {
			for _, k := range p.pendingCluster {
				args = append(args, k)
				_, end = k.Span()
			}
			p.pendingCluster = nil
		}
	}
	cmd := NewCommandStatementNode(cmdName, args, unterm, nameTok.Start, end)
	if unterm {
		return p.invalid(cmd, ErrUnterminatedString, "unterminated string in command name", nameTok.Start, end)
	}
	return cmd
}

func (p *Parser) parseCommandArgument() Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokOption:
		return p.parseLongOptionArgument()
	case tok.Kind == TokOperator && tok.Text == "-" && p.looksLikeShortClusterAhead():
		return p.parseShortOptionCluster()
	case tok.Kind == TokSpecial && tok.Text == "[":
		return p.parseArrayLiteral()
	case tok.Kind == TokSpecial && tok.Text == "$(":
		return p.parseInnerExpression()
	case tok.Kind == TokString, tok.Kind == TokNumber, tok.Kind == TokBoolean,
		tok.Kind == TokIdentifier, tok.Kind == TokInterpolatedString, tok.Kind == TokPropertyAccess:
		return p.parseCommandLiteralArgument()
	default:
		bad := p.next()
		return p.invalid(nil, ErrUnexpectedToken, fmt.Sprintf("unexpected token %q in command arguments", bad.Text), bad.Start, bad.End)
	}
}

// looksLikeShortClusterAhead reports whether the "-" at peekAt(0) is
// immediately (byte-adjacent) followed by a bareword letter run, the
// signal that the parser — not the lexer — uses to split a single-dash
// flag cluster.
func (p *Parser) looksLikeShortClusterAhead() bool {
	dash := p.peekAt(0)
	next := p.peekAt(1)
	return next.Kind == TokString && next.Quote == 0 && next.Start == dash.End && len(next.Text) > 0 && isAlpha(next.Text[0])
}

// parseShortOptionCluster splits "-kEwL" into one OptionKeyNode per
// letter, each with a single-character value. parseCommandArgument's
// caller only has room for one Node per call, so the first key is
// returned directly and the rest are queued in p.pendingCluster for the
// command-argument loop to flush as additional positional args.
func (p *Parser) parseShortOptionCluster() Node {
	p.next() // "-"
	word := p.next()
	var keys []Node
	for i := 0; i < len(word.Text); i++ {
		start := word.Start + i
		keys = append(keys, NewOptionKeyNode(string(word.Text[i]), "-", start, start+1))
	}
	p.pendingCluster = keys[1:]
	return keys[0]
}

// ----- long option / option-expression -----

func (p *Parser) parseLongOptionArgument() Node {
	opt := p.next()
	key := NewOptionKeyNode(opt.Text, "--", opt.Start, opt.End)
	if p.argumentFollowsAsValue() {
		val := p.parseCommandLiteralOrGroupArgument()
		_, end := val.Span()
		return NewOptionExpressionNode(key, val, opt.Start, end)
	}
	return key
}

// argumentFollowsAsValue reports whether the next token can start a
// value-producing argument that is not itself another option or a
// command boundary/terminator — the signal that a long option is
// directly adjacent to a value-producing token.
func (p *Parser) argumentFollowsAsValue() bool {
	tok := p.peek()
	if p.isCommandTerminator(tok) {
		return false
	}
	switch tok.Kind {
	case TokString, TokNumber, TokBoolean, TokIdentifier, TokInterpolatedString, TokPropertyAccess:
		return true
	case TokSpecial:
		return tok.Text == "[" || tok.Text == "$("
	default:
		return false
	}
}

func (p *Parser) parseCommandLiteralOrGroupArgument() Node {
	tok := p.peek()
	if tok.Kind == TokSpecial && tok.Text == "[" {
		return p.parseArrayLiteral()
	}
	if tok.Kind == TokSpecial && tok.Text == "$(" {
		return p.parseInnerExpression()
	}
	return p.parseCommandLiteralArgument()
}

// parseCommandLiteralArgument handles String/Number/Boolean/Identifier/
// InterpolatedString/PropertyAccess tokens in argument position, including
// the PrefixChars-on-bareword split and the postfix `.`-chain (property
// access / array index).
func (p *Parser) parseCommandLiteralArgument() Node {
	tok := p.next()
	var base Node
	switch tok.Kind {
	case TokString:
		if tok.Quote == 0 && len(tok.Text) >= 2 && PrefixChars[tok.Text[0]] {
			base = p.splitPrefixLiteral(tok)
		} else {
			base = NewStringNode(tok.Text, tok.Quote, tok.Flags.Has(FlagUnterminatedString), tok.Start, tok.End)
		}
	case TokNumber:
		base = NewNumberNode(tok.Number, tok.Start, tok.End)
	case TokBoolean:
		base = NewBooleanNode(tok.Bool, tok.Start, tok.End)
	case TokIdentifier:
		if tok.Flags.Has(FlagInvalidName) {
			base = p.invalid(nil, ErrInvalidVariableName, "invalid variable name after '$'", tok.Start, tok.End)
		} else {
			base = NewIdentifierNode(tok.Text, tok.Start, tok.End)
		}
	case TokInterpolatedString:
		base = buildInterpolatedString(tok)
	case TokPropertyAccess:
		base = propertyAccessChain(tok)
	default:
		base = p.invalid(nil, ErrUnexpectedToken, fmt.Sprintf("unexpected token %q", tok.Text), tok.Start, tok.End)
	}
	return p.parsePostfix(base)
}

// splitPrefixLiteral implements parser-level PrefixToken recognition: a
// sigil character directly preceding a literal inside an argument slot.
// The remainder is re-classified as a number, boolean, or bareword
// string.
func (p *Parser) splitPrefixLiteral(tok Token) Node {
	prefixCh := tok.Text[0:1]
	rest := tok.Text[1:]
	prefix := NewPrefixTokenNode(prefixCh, tok.Start, tok.Start+1)
	var inner Node
	switch {
	case isAllDigitsWithOptionalDot(rest):
		var v float64
		fmt.Sscanf(rest, "%g", &v)
		inner = NewNumberNode(v, tok.Start+1, tok.End)
	case BooleanLiterals[rest]:
		inner = NewBooleanNode(BooleanLiterals[rest], tok.Start+1, tok.End)
	default:
		inner = NewStringNode(rest, 0, false, tok.Start+1, tok.End)
	}
	return NewPrefixExpressionNode(prefix, inner, tok.Start, tok.End)
}

func isAllDigitsWithOptionalDot(s string) bool {
	if s == "" {
		return false
	}
	dots := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dots++
			if dots > 1 {
				return false
			}
			continue
		}
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// ----- postfix: property access / array index -----

func (p *Parser) parsePostfix(base Node) Node {
	for {
		tok := p.peek()
		if !(tok.Kind == TokSpecial && tok.Text == ".") {
			return base
		}
		p.next() // "."
		next := p.peek()
		if next.Kind == TokNumber {
			p.next()
			idx := NewNumberNode(next.Number, next.Start, next.End)
			start, _ := base.Span()
			base = NewArrayIndexExpressionNode(base, idx, start, next.End)
			continue
		}
		if next.Kind == TokIdentifier || next.Kind == TokString {
			p.next()
			name := NewIdentifierNode(next.Text, next.Start, next.End)
			start, _ := base.Span()
			base = NewPropertyAccessExpressionNode(base, name, start, next.End)
			continue
		}
		start, _ := base.Span()
		return p.invalid(base, ErrInvalidPropertyAccess, "'.' must be followed by a property name or index", start, next.End)
	}
}

// ----- array / object literals -----

func (p *Parser) parseArrayLiteral() Node {
	open := p.next() // "["
	var values []Node
	for !(p.peek().Kind == TokSpecial && p.peek().Text == "]") && p.peek().Kind != TokEOF {
		values = append(values, p.parseExpression(0))
		if p.peek().Kind == TokSpecial && p.peek().Text == "," {
			p.next()
			continue
		}
		break
	}
	end := open.End
	closer := p.peek()
	if closer.Kind == TokSpecial && closer.Text == "]" {
		p.next()
		end = closer.End
	}
	arr := NewArrayLiteralNode(values, open.Start, end)
	if !(closer.Kind == TokSpecial && closer.Text == "]") {
		p.flagUnclosed(arr, ErrUnclosedBracket, "unclosed array literal")
	}
	return arr
}

func (p *Parser) parseObjectLiteral() Node {
	open := p.next() // "{"
	var values []*PropertyAssignmentNode
	for !(p.peek().Kind == TokSpecial && p.peek().Text == "}") && p.peek().Kind != TokEOF {
		values = append(values, p.parsePropertyAssignment())
		if p.peek().Kind == TokSpecial && p.peek().Text == "," {
			p.next()
			continue
		}
		break
	}
	end := open.End
	closer := p.peek()
	if closer.Kind == TokSpecial && closer.Text == "}" {
		p.next()
		end = closer.End
	}
	obj := NewObjectLiteralNode(values, open.Start, end)
	if !(closer.Kind == TokSpecial && closer.Text == "}") {
		p.flagUnclosed(obj, ErrUnclosedBlock, "unclosed object literal")
	}
	return obj
}

func (p *Parser) parsePropertyAssignment() *PropertyAssignmentNode {
	keyTok := p.next()
	var name Node
	if keyTok.Kind == TokIdentifier {
		name = NewIdentifierNode(keyTok.Text, keyTok.Start, keyTok.End)
	} else {
		name = NewStringNode(keyTok.Text, keyTok.Quote, false, keyTok.Start, keyTok.End)
	}
	if p.peek().Kind == TokSpecial && p.peek().Text == ":" {
		p.next()
	} else {
		p.raiseOn(name, ErrUnexpectedToken, "expected ':' after object key")
	}
	value := p.parseExpression(0)
	start, _ := name.Span()
	end := start
	if value != nil {
		_, end = value.Span()
	}
	return NewPropertyAssignmentNode(name, value, start, end)
}

// ----- inner expression: $(...) -----

func (p *Parser) parseInnerExpression() Node {
	open := p.next() // "$("
	body := p.parseInnerExpressionBody()
	end := open.End
	closer := p.peek()
	if closer.Kind == TokSpecial && closer.Text == ")" {
		p.next()
		end = closer.End
	}
	inner := NewInnerExpressionNode(body, open.Start, end)
	if !(closer.Kind == TokSpecial && closer.Text == ")") {
		p.flagUnclosed(inner, ErrUnclosedParen, "unclosed inner expression")
	}
	return inner
}

// parseInnerExpressionBody decides whether the content of $(...) is a
// VariableStatement, a CommandStatement, or a general (possibly binary)
// expression — the union of node kinds InnerExpression.Expression may
// hold.
func (p *Parser) parseInnerExpressionBody() Node {
	tok := p.peek()
	if tok.Kind == TokIdentifier && p.peekAt(1).Kind == TokOperator && p.peekAt(1).Text == "=" {
		return p.parseVariableStatement()
	}
	if tok.Kind == TokString && tok.Quote == 0 && !Keywords[tok.Text] {
		if _, isBool := BooleanLiterals[tok.Text]; !isBool {
			return p.parseCommandStatement()
		}
	}
	return p.parseExpression(0)
}

// ----- expression mode (Pratt) -----

func (p *Parser) parseExpression(minPrec int) Node {
	left := p.parseUnary()
	for {
		tok := p.peek()
		if tok.Kind != TokOperator {
			break
		}
		prec, ok := Precedence[tok.Text]
		if !ok || prec < minPrec {
			break
		}
		opTok := p.next()
		opNode := NewOperatorTokenNode(opTok.Text, opTok.Start, opTok.End)
		right := p.parseExpression(prec + 1)
		ls, _ := left.Span()
		var re int
		if right != nil {
			_, re = right.Span()
		} else {
			re = opTok.End
		}
		left = NewBinaryExpressionNode(left, opNode, right, ls, re)
	}
	return left
}

func (p *Parser) parseUnary() Node {
	tok := p.peek()
	if tok.Kind == TokOperator && tok.Text == "!" {
		p.next()
		expr := p.parseUnary()
		end := tok.End
		if expr != nil {
			_, end = expr.Span()
		}
		return NewUnaryExpressionNode(tok.Text, expr, tok.Start, end)
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePrimary() Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokNumber:
		p.next()
		return NewNumberNode(tok.Number, tok.Start, tok.End)
	case tok.Kind == TokBoolean:
		p.next()
		return NewBooleanNode(tok.Bool, tok.Start, tok.End)
	case tok.Kind == TokString:
		p.next()
		return NewStringNode(tok.Text, tok.Quote, tok.Flags.Has(FlagUnterminatedString), tok.Start, tok.End)
	case tok.Kind == TokInterpolatedString:
		p.next()
		return buildInterpolatedString(tok)
	case tok.Kind == TokIdentifier:
		p.next()
		if tok.Flags.Has(FlagInvalidName) {
			return p.invalid(nil, ErrInvalidVariableName, "invalid variable name after '$'", tok.Start, tok.End)
		}
		return NewIdentifierNode(tok.Text, tok.Start, tok.End)
	case tok.Kind == TokPropertyAccess:
		p.next()
		return propertyAccessChain(tok)
	case tok.Kind == TokSpecial && tok.Text == "(":
		return p.parseParenthesized()
	case tok.Kind == TokSpecial && tok.Text == "[":
		return p.parseArrayLiteral()
	case tok.Kind == TokSpecial && tok.Text == "{":
		return p.parseObjectLiteral()
	case tok.Kind == TokSpecial && tok.Text == "$(":
		return p.parseInnerExpression()
	default:
		p.next()
		return p.invalid(nil, ErrMissingExpression, fmt.Sprintf("expected an expression, found %q", tok.Text), tok.Start, tok.End)
	}
}

func (p *Parser) parseParenthesized() Node {
	open := p.next() // "("
	expr := p.parseExpression(0)
	end := open.End
	closer := p.peek()
	if closer.Kind == TokSpecial && closer.Text == ")" {
		p.next()
		end = closer.End
	}
	node := NewParenthesizedExpressionNode(expr, open.Start, end)
	if !(closer.Kind == TokSpecial && closer.Text == ")") {
		p.flagUnclosed(node, ErrUnclosedParen, "unclosed parenthesized expression")
	}
	return node
}

// ----- shared node-building helpers -----

// propertyAccessChain desugars a single PropertyAccess token (head
// identifier plus one or more trailing ".name" segments collected by the
// lexer) into nested PropertyAccessExpressionNodes over an Identifier
// base, since the closed AST node set has no standalone PropertyAccess
// variant — it exists only as a Token kind. Every produced node shares
// the originating token's span: the lexer does not retain per-segment
// offsets, and render/prettyPrint are explicitly near-source, not
// byte-exact.
func propertyAccessChain(tok Token) Node {
	var node Node = NewIdentifierNode(tok.Text, tok.Start, tok.End)
	for _, prop := range tok.Properties {
		node = NewPropertyAccessExpressionNode(node, NewIdentifierNode(prop, tok.Start, tok.End), tok.Start, tok.End)
	}
	return node
}

// buildInterpolatedString turns an InterpolatedString token's alternating
// Values/Variables slices into the InterpolatedStringNode.Values node
// list (String|Identifier, alternating).
func buildInterpolatedString(tok Token) *InterpolatedStringNode {
	var vals []Node
	for i, v := range tok.Variables {
		if i < len(tok.Values) {
			vals = append(vals, NewStringNode(tok.Values[i], tok.Quote, false, tok.Start, tok.End))
		}
		vals = append(vals, NewIdentifierNode(v, tok.Start, tok.End))
	}
	if len(tok.Values) > len(tok.Variables) {
		vals = append(vals, NewStringNode(tok.Values[len(tok.Variables)], tok.Quote, false, tok.Start, tok.End))
	}
	n := NewInterpolatedStringNode(vals, tok.Start, tok.End)
	if !tok.Closed {
		n.addFlags(NodeHasError | NodeUnterminated)
	}
	return n
}
