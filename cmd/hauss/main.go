// Command hauss compiles a single Hauss source file to x86-64 Linux
// assembly. The CLI itself, file I/O, and the optional assemble-and-link
// step are all external collaborators — none of the core
// compiler packages know this binary exists.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/ast"
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/codegen"
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/compiler"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: hauss <file> [-o output.s] [--tokens] [--ast] [-run]")
		os.Exit(1)
	}

	var inputFile, outputFile string
	showTokens, showAST, run := false, false, false

	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case arg == "-o" && i+1 < len(os.Args):
			outputFile = os.Args[i+1]
			i++
		case arg == "--tokens":
			showTokens = true
		case arg == "--ast":
			showAST = true
		case arg == "-run":
			run = true
		case !strings.HasPrefix(arg, "-"):
			inputFile = arg
		}
	}

	if inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		os.Exit(1)
	}
	if outputFile == "" {
		outputFile = "out.s"
	}

	src, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", inputFile, err)
		os.Exit(1)
	}

	toks, err := compiler.Tokenize(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if showTokens {
		for _, t := range toks {
			fmt.Printf("%4d %-14s %q\n", t.Line, t.Kind, t.Value)
		}
		return
	}

	prog, err := compiler.Parse(toks)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if showAST {
		printProgram(prog)
		return
	}

	asm, err := codegen.Generate(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, []byte(asm), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	if run {
		if err := assembleAndLink(outputFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// assembleAndLink shells out to nasm and ld, mirroring the reference
// tutorial's build script. It is never invoked by anything other than
// this -run convenience flag.
func assembleAndLink(asmFile string) error {
	base := strings.TrimSuffix(asmFile, filepath.Ext(asmFile))
	objFile := base + ".o"
	exe := base

	nasm := exec.Command("nasm", "-f", "elf64", "-o", objFile, asmFile)
	nasm.Stderr = os.Stderr
	if err := nasm.Run(); err != nil {
		return fmt.Errorf("nasm: %w", err)
	}

	ld := exec.Command("ld", "-o", exe, objFile)
	ld.Stderr = os.Stderr
	if err := ld.Run(); err != nil {
		return fmt.Errorf("ld: %w", err)
	}
	return nil
}

// printProgram dumps the parsed AST for --ast.
func printProgram(prog *ast.Program) {
	for _, s := range prog.Stmts {
		printStmt(s, 0)
	}
}

func printStmt(s ast.Stmt, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch s := s.(type) {
	case *ast.ExitStmt:
		fmt.Printf("%sExit: ", prefix)
		printExpr(s.Value)
		fmt.Println()
	case *ast.LetStmt:
		fmt.Printf("%sLet %s = ", prefix, s.Name.Value)
		printExpr(s.Value)
		fmt.Println()
	case *ast.AssignStmt:
		fmt.Printf("%sAssign %s = ", prefix, s.Name.Value)
		printExpr(s.Value)
		fmt.Println()
	case *ast.ScopeStmt:
		fmt.Printf("%sScope\n", prefix)
		for _, inner := range s.Body.Stmts {
			printStmt(inner, indent+1)
		}
	case *ast.PrintStmt:
		fmt.Printf("%sPrint: ", prefix)
		printExpr(s.Value)
		fmt.Println()
	case *ast.IfStmt:
		fmt.Printf("%sIf: ", prefix)
		printExpr(s.Cond)
		fmt.Println()
		for _, inner := range s.Then.Stmts {
			printStmt(inner, indent+1)
		}
		printIfPred(s.Pred, indent)
	}
}

func printIfPred(pred ast.IfPred, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch p := pred.(type) {
	case *ast.Elif:
		fmt.Printf("%sElif: ", prefix)
		printExpr(p.Cond)
		fmt.Println()
		for _, inner := range p.Body.Stmts {
			printStmt(inner, indent+1)
		}
		printIfPred(p.Next, indent)
	case *ast.Else:
		fmt.Printf("%sElse\n", prefix)
		for _, inner := range p.Body.Stmts {
			printStmt(inner, indent+1)
		}
	}
}

func printExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.BinExpr:
		fmt.Print("(")
		printExpr(e.Lhs)
		fmt.Printf(" %s ", e.Op)
		printExpr(e.Rhs)
		fmt.Print(")")
	case *ast.Neg:
		fmt.Print("(-")
		printTerm(e.Inner)
		fmt.Print(")")
	case *ast.Paren:
		fmt.Print("(")
		printExpr(e.Inner)
		fmt.Print(")")
	case *ast.IntLit:
		fmt.Print(e.Tok.Value)
	case *ast.Ident:
		fmt.Print(e.Tok.Value)
	}
}

func printTerm(t ast.Term) {
	printExpr(t)
}
