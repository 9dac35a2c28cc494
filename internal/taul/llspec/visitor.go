package llspec

// Visitor receives one On<Opcode> call per Record in a Spec, walked in order.
// Operands are fully decoded before the call, per the module spec's visitor
// contract. Implementations that only care about a handful of opcodes can
// embed NopVisitor to satisfy the rest.
type Visitor interface {
	OnClose(pos int)
	OnAlternative(pos int)
	OnRightAssoc(pos int)
	OnLprDecl(pos int, name string)
	OnPprDecl(pos int, name string)
	OnLpr(pos int, name string, q Qualifier)
	OnPpr(pos int, name string, q Qualifier)
	OnEnd(pos int)
	OnAny(pos int)
	OnString(pos int, text string)
	OnCharset(pos int, text string)
	OnToken(pos int)
	OnFailure(pos int)
	OnName(pos int, target string, precedVal uint32)
	OnSequence(pos int)
	OnLookahead(pos int)
	OnLookaheadNot(pos int)
	OnNot(pos int)
	OnOptional(pos int)
	OnKleeneStar(pos int)
	OnKleenePlus(pos int)
	OnPrecedPred(pos int, precedMax, precedVal uint32)
	OnPylon(pos int)
}

// NopVisitor implements Visitor with no-op methods so embedders need only
// override the opcodes they care about.
type NopVisitor struct{}

func (NopVisitor) OnClose(int)                      {}
func (NopVisitor) OnAlternative(int)                {}
func (NopVisitor) OnRightAssoc(int)                 {}
func (NopVisitor) OnLprDecl(int, string)             {}
func (NopVisitor) OnPprDecl(int, string)             {}
func (NopVisitor) OnLpr(int, string, Qualifier)      {}
func (NopVisitor) OnPpr(int, string, Qualifier)      {}
func (NopVisitor) OnEnd(int)                         {}
func (NopVisitor) OnAny(int)                         {}
func (NopVisitor) OnString(int, string)              {}
func (NopVisitor) OnCharset(int, string)             {}
func (NopVisitor) OnToken(int)                       {}
func (NopVisitor) OnFailure(int)                     {}
func (NopVisitor) OnName(int, string, uint32)        {}
func (NopVisitor) OnSequence(int)                    {}
func (NopVisitor) OnLookahead(int)                   {}
func (NopVisitor) OnLookaheadNot(int)                {}
func (NopVisitor) OnNot(int)                         {}
func (NopVisitor) OnOptional(int)                    {}
func (NopVisitor) OnKleeneStar(int)                  {}
func (NopVisitor) OnKleenePlus(int)                  {}
func (NopVisitor) OnPrecedPred(int, uint32, uint32)  {}
func (NopVisitor) OnPylon(int)                       {}

// Walker steps through a Spec's records, dispatching each to a Visitor and
// offering lookahead via Peek.
type Walker struct {
	spec Spec
	idx  int
}

// NewWalker returns a Walker positioned before the first record of spec.
func NewWalker(spec Spec) *Walker { return &Walker{spec: spec} }

// Pos returns the index of the record the walker will dispatch next.
func (w *Walker) Pos() int { return w.idx }

// Peek returns the opcode of the next record without advancing, and false if
// the stream is exhausted.
func (w *Walker) Peek() (Opcode, bool) {
	if w.idx >= len(w.spec.Records) {
		return 0, false
	}
	return w.spec.Records[w.idx].Op, true
}

// Walk dispatches every remaining record to v in order, advancing to the end
// of the stream.
func (w *Walker) Walk(v Visitor) {
	for w.idx < len(w.spec.Records) {
		w.Step(v)
	}
}

// Step dispatches exactly one record to v and advances past it. It panics if
// the stream is already exhausted; callers should check Peek first.
func (w *Walker) Step(v Visitor) {
	r := w.spec.Records[w.idx]
	w.idx++
	dispatch(r, v)
}

func dispatch(r Record, v Visitor) {
	switch r.Op {
	case Close:
		v.OnClose(r.Pos)
	case Alternative:
		v.OnAlternative(r.Pos)
	case RightAssoc:
		v.OnRightAssoc(r.Pos)
	case LprDecl:
		v.OnLprDecl(r.Pos, r.Name)
	case PprDecl:
		v.OnPprDecl(r.Pos, r.Name)
	case Lpr:
		v.OnLpr(r.Pos, r.Name, r.Qualifier)
	case Ppr:
		v.OnPpr(r.Pos, r.Name, r.Qualifier)
	case End:
		v.OnEnd(r.Pos)
	case Any:
		v.OnAny(r.Pos)
	case String:
		v.OnString(r.Pos, r.Text)
	case Charset:
		v.OnCharset(r.Pos, r.Text)
	case Token:
		v.OnToken(r.Pos)
	case Failure:
		v.OnFailure(r.Pos)
	case Name:
		v.OnName(r.Pos, r.Name, r.PrecedVal)
	case Sequence:
		v.OnSequence(r.Pos)
	case Lookahead:
		v.OnLookahead(r.Pos)
	case LookaheadNot:
		v.OnLookaheadNot(r.Pos)
	case Not:
		v.OnNot(r.Pos)
	case Optional:
		v.OnOptional(r.Pos)
	case KleeneStar:
		v.OnKleeneStar(r.Pos)
	case KleenePlus:
		v.OnKleenePlus(r.Pos)
	case PrecedPred:
		v.OnPrecedPred(r.Pos, r.PrecedMax, r.PrecedVal)
	case Pylon:
		v.OnPylon(r.Pos)
	}
}
