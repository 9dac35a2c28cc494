package llspec

// Spec is a recorded opcode stream plus the source position each record was
// written at. It is the llspec described by the module spec: a sequence of
// (opcode, source-position, operands) records.
type Spec struct {
	Records []Record
}

// Concat returns a new Spec whose records are those of a followed by those of
// b, i.e. buffer concatenation. Compiling Concat(a, b) is equivalent to
// compiling a single stream that records a's then b's records in order.
func Concat(a, b Spec) Spec {
	out := Spec{Records: make([]Record, 0, len(a.Records)+len(b.Records))}
	out.Records = append(out.Records, a.Records...)
	out.Records = append(out.Records, b.Records...)
	return out
}

// Writer builds a Spec by appending records, tracking a "current position"
// that successive zero-position calls are stamped with.
type Writer struct {
	spec Spec
	pos  int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Pos sets the source position subsequent records are stamped with.
func (w *Writer) Pos(p int) *Writer {
	w.pos = p
	return w
}

func (w *Writer) emit(r Record) *Writer {
	r.Pos = w.pos
	w.spec.Records = append(w.spec.Records, r)
	return w
}

// Spec returns the Spec built so far.
func (w *Writer) Spec() Spec { return w.spec }

// Close emits a `close` record, ending the innermost still-open scope.
func (w *Writer) Close() *Writer { return w.emit(Record{Op: Close}) }

// Alternative emits an `alternative` record, starting a new production
// alternative within the enclosing scope.
func (w *Writer) Alternative() *Writer { return w.emit(Record{Op: Alternative}) }

// RightAssocOp marks the alternative it opens as right-associative; legal
// only as the first record of a precedence-PPR alternative.
func (w *Writer) RightAssocOp() *Writer { return w.emit(Record{Op: RightAssoc}) }

// LprDecl declares (without defining) a lexer rule named name.
func (w *Writer) LprDecl(name string) *Writer { return w.emit(Record{Op: LprDecl, Name: name}) }

// PprDecl declares (without defining) a parser rule named name.
func (w *Writer) PprDecl(name string) *Writer { return w.emit(Record{Op: PprDecl, Name: name}) }

// Lpr opens the body of lexer rule name with the given qualifier.
func (w *Writer) Lpr(name string, q Qualifier) *Writer {
	return w.emit(Record{Op: Lpr, Name: name, Qualifier: q})
}

// Ppr opens the body of parser rule name with the given qualifier.
func (w *Writer) Ppr(name string, q Qualifier) *Writer {
	return w.emit(Record{Op: Ppr, Name: name, Qualifier: q})
}

// End emits an `end` leaf, matching only end-of-input of the active table.
func (w *Writer) End() *Writer { return w.emit(Record{Op: End}) }

// Any emits an `any` leaf, matching any normal ID of the active table's
// domain.
func (w *Writer) Any() *Writer { return w.emit(Record{Op: Any}) }

// StringOp emits a `string` leaf matching the literal text s.
func (w *Writer) StringOp(s string) *Writer { return w.emit(Record{Op: String, Text: s}) }

// CharsetOp emits a `charset` leaf matching the parsed charset literal s.
func (w *Writer) CharsetOp(s string) *Writer { return w.emit(Record{Op: Charset, Text: s}) }

// TokenOp emits a `token` leaf, matching any normal lexer-rule ID (parser
// rules only).
func (w *Writer) TokenOp() *Writer { return w.emit(Record{Op: Token}) }

// FailureOp emits a `failure` leaf, matching the failure-LPR ID (parser rules
// only).
func (w *Writer) FailureOp() *Writer { return w.emit(Record{Op: Failure}) }

// NameOp emits a `name` leaf referencing target.
func (w *Writer) NameOp(target string) *Writer { return w.emit(Record{Op: Name, Name: target}) }

// NameOpWithPreced emits a `name` leaf carrying a precedence-value operand,
// the llspec-only extension to `name`. When the name resolves to a PPR,
// compile.Compile passes the operand through as that reference's precedence
// value.
func (w *Writer) NameOpWithPreced(target string, precedVal uint32) *Writer {
	return w.emit(Record{Op: Name, Name: target, PrecedVal: precedVal})
}

// Sequence opens a sequence composite.
func (w *Writer) Sequence() *Writer { return w.emit(Record{Op: Sequence}) }

// LookaheadOp opens a lookahead composite.
func (w *Writer) LookaheadOp() *Writer { return w.emit(Record{Op: Lookahead}) }

// LookaheadNotOp opens a lookahead-not composite.
func (w *Writer) LookaheadNotOp() *Writer { return w.emit(Record{Op: LookaheadNot}) }

// NotOp opens a not composite.
func (w *Writer) NotOp() *Writer { return w.emit(Record{Op: Not}) }

// OptionalOp opens an optional composite.
func (w *Writer) OptionalOp() *Writer { return w.emit(Record{Op: Optional}) }

// KleeneStarOp opens a kleene-star composite.
func (w *Writer) KleeneStarOp() *Writer { return w.emit(Record{Op: KleeneStar}) }

// KleenePlusOp opens a kleene-plus composite.
func (w *Writer) KleenePlusOp() *Writer { return w.emit(Record{Op: KleenePlus}) }

// PrecedPredOp emits an llspec-only precedence-predicate record, which
// compile.Compile rejects as illegal_in_no_scope.
func (w *Writer) PrecedPredOp(precedMax, precedVal uint32) *Writer {
	return w.emit(Record{Op: PrecedPred, PrecedMax: precedMax, PrecedVal: precedVal})
}

// PylonOp emits an llspec-only pylon marker record, which compile.Compile
// rejects as illegal_in_no_scope.
func (w *Writer) PylonOp() *Writer { return w.emit(Record{Op: Pylon}) }

// Replay appends every record of src onto w's stream unchanged. It is the
// free-function equivalent of the teacher-generation's "writer replays into
// another writer" idiom: copying or splicing a sub-spec is just appending its
// records.
func (w *Writer) Replay(src Spec) *Writer {
	w.spec.Records = append(w.spec.Records, src.Records...)
	return w
}
