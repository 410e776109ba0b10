// Package codegen emits x86-64 Linux assembly from an ast.Program.
// Generation is single-pass and depth-first; the Generator keeps a
// compile-time model of the runtime stack (stack_size/vars/scopes) to
// resolve identifiers to rsp-relative offsets.
package codegen

import (
	"fmt"
	"strings"

	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/ast"
)

// SemanticError reports a `let` redeclaration or a reference/assignment to
// an unknown identifier. Both are fatal: generation stops at the first one.
type SemanticError struct {
	Msg string
}

func (e *SemanticError) Error() string { return e.Msg }

func redeclared(name string) error {
	return &SemanticError{Msg: fmt.Sprintf("Identifier already used: %s", name)}
}

func undeclared(name string) error {
	return &SemanticError{Msg: fmt.Sprintf("Undeclared identifier: %s", name)}
}

type localVar struct {
	name     string
	stackLoc int
}

// Generator walks a Program once and accumulates assembly text.
type Generator struct {
	out          strings.Builder
	stackSize    int
	vars         []localVar
	scopes       []int
	labelCounter int
	err          error
}

// New returns a ready-to-use Generator.
func New() *Generator {
	return &Generator{}
}

// Generate lowers prog to a complete assembly listing, or returns the
// first semantic error encountered.
func Generate(prog *ast.Program) (string, error) {
	g := New()
	g.program(prog)
	if g.err != nil {
		return "", g.err
	}
	return g.out.String(), nil
}

func (g *Generator) program(prog *ast.Program) {
	g.emit("global _start")
	g.emit("_start:")
	for _, stmt := range prog.Stmts {
		if g.err != nil {
			return
		}
		g.stmt(stmt)
	}
	if g.err != nil {
		return
	}
	g.emit("    mov rax, 60")
	g.emit("    mov rdi, 0")
	g.emit("    syscall")
	g.emitPrintInt()
}

// --- statements ---

func (g *Generator) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExitStmt:
		g.expr(s.Value)
		if g.err != nil {
			return
		}
		g.emit("    mov rax, 60")
		g.pop("rdi")
		g.emit("    syscall")

	case *ast.LetStmt:
		name := s.Name.Value
		if g.lookup(name) != nil {
			g.err = redeclared(name)
			return
		}
		g.vars = append(g.vars, localVar{name: name, stackLoc: g.stackSize})
		g.expr(s.Value)

	case *ast.AssignStmt:
		name := s.Name.Value
		v := g.lookup(name)
		if v == nil {
			g.err = undeclared(name)
			return
		}
		g.expr(s.Value)
		if g.err != nil {
			return
		}
		g.pop("rax")
		g.emit("    mov [rsp + %d], rax", g.offsetOf(*v))

	case *ast.ScopeStmt:
		g.emit("    ;; scope")
		g.scope(s.Body)
		g.emit("    ;; /scope")

	case *ast.IfStmt:
		g.ifStmt(s)

	case *ast.PrintStmt:
		g.expr(s.Value)
		if g.err != nil {
			return
		}
		g.pop("rdi")
		g.emit("    call print_int")

	default:
		panic(fmt.Sprintf("codegen: unhandled statement %T", s))
	}
}

func (g *Generator) ifStmt(s *ast.IfStmt) {
	g.expr(s.Cond)
	if g.err != nil {
		return
	}
	g.pop("rax")
	skip := g.newLabel()
	g.emit("    test rax, rax")
	g.emit("    jz %s", skip)
	g.scope(s.Then)
	if g.err != nil {
		return
	}

	if s.Pred == nil {
		g.emit("%s:", skip)
		return
	}

	end := g.newLabel()
	g.emit("    jmp %s", end)
	g.emit("%s:", skip)
	g.ifPred(s.Pred, end)
	if g.err != nil {
		return
	}
	g.emit("%s:", end)
}

func (g *Generator) ifPred(pred ast.IfPred, end string) {
	switch p := pred.(type) {
	case *ast.Elif:
		g.emit("    ;; elif")
		g.expr(p.Cond)
		if g.err != nil {
			return
		}
		g.pop("rax")
		next := g.newLabel()
		g.emit("    test rax, rax")
		g.emit("    jz %s", next)
		g.scope(p.Body)
		if g.err != nil {
			return
		}
		g.emit("    jmp %s", end)
		if p.Next != nil {
			g.emit("%s:", next)
			g.ifPred(p.Next, end)
			return
		}
		g.emit("%s:", next)

	case *ast.Else:
		g.scope(p.Body)

	default:
		panic(fmt.Sprintf("codegen: unhandled if-predicate %T", p))
	}
}

func (g *Generator) scope(s *ast.Scope) {
	checkpoint := len(g.vars)
	g.scopes = append(g.scopes, checkpoint)
	for _, stmt := range s.Stmts {
		if g.err != nil {
			break
		}
		g.stmt(stmt)
	}
	popCount := len(g.vars) - g.scopes[len(g.scopes)-1]
	g.emit("    add rsp, %d", popCount*8)
	g.stackSize -= popCount
	g.vars = g.vars[:len(g.vars)-popCount]
	g.scopes = g.scopes[:len(g.scopes)-1]
}

// --- expressions ---

func (g *Generator) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.BinExpr:
		g.binExpr(e)
	case ast.Term:
		g.term(e)
	default:
		panic(fmt.Sprintf("codegen: unhandled expression %T", e))
	}
}

func (g *Generator) term(t ast.Term) {
	switch t := t.(type) {
	case *ast.IntLit:
		g.emit("    mov rax, %s", t.Tok.Value)
		g.push("rax")

	case *ast.Ident:
		v := g.lookup(t.Tok.Value)
		if v == nil {
			g.err = undeclared(t.Tok.Value)
			return
		}
		g.push(fmt.Sprintf("QWORD [rsp + %d]", g.offsetOf(*v)))

	case *ast.Neg:
		g.term(t.Inner)
		if g.err != nil {
			return
		}
		g.pop("rax")
		g.emit("    neg rax")
		g.push("rax")

	case *ast.Paren:
		g.expr(t.Inner)

	default:
		panic(fmt.Sprintf("codegen: unhandled term %T", t))
	}
}

// binExpr lowers a binary operation. Arithmetic ops evaluate RHS then LHS
// so that, after two pops, LHS lands in rax and RHS in rbx; comparisons
// evaluate LHS then RHS and pop in the opposite order. This asymmetry is
// part of the generator's contract and must not be
// "corrected" away.
func (g *Generator) binExpr(b *ast.BinExpr) {
	switch b.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		g.expr(b.Rhs)
		g.expr(b.Lhs)
		if g.err != nil {
			return
		}
		g.pop("rax")
		g.pop("rbx")
		switch b.Op {
		case ast.Add:
			g.emit("    add rax, rbx")
		case ast.Sub:
			g.emit("    sub rax, rbx")
		case ast.Mul:
			g.emit("    mul rbx")
		case ast.Div:
			g.emit("    div rbx")
		}
		g.push("rax")

	case ast.Gt, ast.Ge, ast.Lt, ast.Le, ast.EqEq:
		g.expr(b.Lhs)
		g.expr(b.Rhs)
		if g.err != nil {
			return
		}
		g.pop("rbx")
		g.pop("rax")
		g.emit("    cmp rax, rbx")
		g.emit("    set%s al", setcc(b.Op))
		g.emit("    movzx rax, al")
		g.push("rax")

	default:
		panic(fmt.Sprintf("codegen: unhandled binary operator %v", b.Op))
	}
}

func setcc(op ast.BinOp) string {
	switch op {
	case ast.Gt:
		return "g"
	case ast.Ge:
		return "ge"
	case ast.Lt:
		return "l"
	case ast.Le:
		return "le"
	case ast.EqEq:
		return "e"
	default:
		panic(fmt.Sprintf("codegen: %v is not a comparison operator", op))
	}
}

// --- compile-time stack model ---

func (g *Generator) lookup(name string) *localVar {
	for i := range g.vars {
		if g.vars[i].name == name {
			return &g.vars[i]
		}
	}
	return nil
}

// offsetOf computes the byte offset used to address v from the current
// rsp: newer pushes sit at lower addresses, and v's
// initializer was the first push at its recorded stack_loc.
func (g *Generator) offsetOf(v localVar) int {
	return (g.stackSize - v.stackLoc - 1) * 8
}

func (g *Generator) push(operand string) {
	g.emit("    push %s", operand)
	g.stackSize++
}

func (g *Generator) pop(reg string) {
	g.emit("    pop %s", reg)
	g.stackSize--
}

func (g *Generator) newLabel() string {
	label := fmt.Sprintf("label%d", g.labelCounter)
	g.labelCounter++
	return label
}

func (g *Generator) emit(format string, args ...interface{}) {
	fmt.Fprintf(&g.out, format+"\n", args...)
}
