//go:build llvm

package llvm_emitter

import (
	"fmt"

	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/lexer"
	"github.com/kievzenit/rcc/internal/semantic_analyzer"
	"tinygo.org/x/go-llvm"
)

// UnsupportedError names a construct the LLVM backend refuses to lower.
type UnsupportedError struct {
	Construct string

	Line   int
	Column int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%d:%d: unsupported construct: %s", e.Line, e.Column, e.Construct)
}

func (e *UnsupportedError) GetMessage() string { return "unsupported construct: " + e.Construct }
func (e *UnsupportedError) GetLine() int       { return e.Line }
func (e *UnsupportedError) GetColumn() int     { return e.Column }

func unsupported(construct string, token *lexer.Token) *UnsupportedError {
	err := &UnsupportedError{Construct: construct}
	if token != nil {
		err.Line = token.Metadata.Line
		err.Column = token.Metadata.Column
	}
	return err
}

// Emitter lowers a program into the body of i32 @main. Variable slots are
// typed from the semantic analysis result, and stored values are converted
// to the slot type.
type Emitter struct {
	result *semantic_analyzer.Result

	variablesMap     map[string]llvm.Value
	variableTypesMap map[string]llvm.Type
	formatsMap       map[string]llvm.Value

	context llvm.Context
	module  llvm.Module
	builder llvm.Builder

	i1Type     llvm.Type
	i32Type    llvm.Type
	i64Type    llvm.Type
	doubleType llvm.Type
	ptrType    llvm.Type

	printfFunc llvm.Value
	printfType llvm.Type

	currentFunc            llvm.Value
	currentAllocBasicBlock llvm.BasicBlock

	loopsContinueBasicBlocks []llvm.BasicBlock
	loopsBreakBasicBlock     []llvm.BasicBlock

	err error
}

func NewEmitter(result *semantic_analyzer.Result) *Emitter {
	return &Emitter{
		result: result,
	}
}

func (e *Emitter) Emit(program ast.Program) (string, error) {
	e.context = llvm.NewContext()
	defer e.context.Dispose()
	e.module = e.context.NewModule("main")
	defer e.module.Dispose()
	e.builder = e.context.NewBuilder()
	defer e.builder.Dispose()

	e.variablesMap = make(map[string]llvm.Value)
	e.variableTypesMap = make(map[string]llvm.Type)
	e.formatsMap = make(map[string]llvm.Value)
	e.loopsContinueBasicBlocks = make([]llvm.BasicBlock, 0)
	e.loopsBreakBasicBlock = make([]llvm.BasicBlock, 0)
	e.err = nil

	e.declareTypes()
	e.declarePrintf()
	e.emitForMain(program)

	if e.err != nil {
		return "", e.err
	}
	if err := llvm.VerifyModule(e.module, llvm.ReturnStatusAction); err != nil {
		return "", fmt.Errorf("verify module: %w", err)
	}

	return e.module.String(), nil
}

func (e *Emitter) declareTypes() {
	e.i1Type = e.context.Int1Type()
	e.i32Type = e.context.Int32Type()
	e.i64Type = e.context.Int64Type()
	e.doubleType = e.context.DoubleType()
	e.ptrType = llvm.PointerType(e.context.Int8Type(), 0)
}

func (e *Emitter) declarePrintf() {
	e.printfType = llvm.FunctionType(e.i32Type, []llvm.Type{e.ptrType}, true)
	e.printfFunc = llvm.AddFunction(e.module, "printf", e.printfType)
}

func (e *Emitter) getLlvmTypeForType(t semantic_analyzer.Type) llvm.Type {
	switch t {
	case semantic_analyzer.Float:
		return e.doubleType
	case semantic_analyzer.String:
		return e.ptrType
	default:
		return e.i64Type
	}
}

func (e *Emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Emitter) emitForMain(program ast.Program) {
	mainType := llvm.FunctionType(e.i32Type, nil, false)
	mainFunc := llvm.AddFunction(e.module, "main", mainType)
	e.currentFunc = mainFunc

	allocBasicBlock := e.context.AddBasicBlock(mainFunc, "alloc")
	e.currentAllocBasicBlock = allocBasicBlock

	entryBasicBlock := e.context.AddBasicBlock(mainFunc, "entry")
	e.builder.SetInsertPointAtEnd(entryBasicBlock)

	e.emitForStmts(program)
	e.builder.CreateRet(llvm.ConstInt(e.i32Type, 0, false))

	e.builder.SetInsertPointAtEnd(allocBasicBlock)
	e.builder.CreateBr(entryBasicBlock)
	e.currentAllocBasicBlock = llvm.BasicBlock{}
}

func (e *Emitter) emitForStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if e.err != nil {
			return
		}
		e.emitForStmt(stmt)
	}
}

func (e *Emitter) emitForStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.LetStmt:
		e.emitForLetStmt(stmt)
	case *ast.ExprStmt:
		e.emitForExprStmt(stmt)
	case *ast.IfStmt:
		e.emitForIfStmt(stmt)
	case *ast.WhileStmt:
		e.emitForWhileStmt(stmt)
	case *ast.LoopStmt:
		e.emitForLoopStmt(stmt)
	case *ast.ReturnStmt:
		e.emitForReturnStmt(stmt)
	case *ast.BreakStmt:
		e.emitForJump(e.loopsBreakBasicBlock, "break", stmt.StartToken)
	case *ast.ContinueStmt:
		e.emitForJump(e.loopsContinueBasicBlocks, "continue", stmt.StartToken)
	case *ast.BlockStmt:
		e.emitForStmts(stmt.Stmts)
	default:
		e.fail(unsupported(fmt.Sprintf("statement %T", stmt), stmt.FirstToken()))
	}
}

// slot returns the stack slot of a variable, allocating it in the alloc
// block on first use.
func (e *Emitter) slot(name string) (llvm.Value, llvm.Type) {
	if slot, ok := e.variablesMap[name]; ok {
		return slot, e.variableTypesMap[name]
	}

	slotType := e.i64Type
	if symbol, ok := e.result.Symbols.Lookup(name); ok {
		slotType = e.getLlvmTypeForType(symbol.Type)
	}

	currBasicBlock := e.builder.GetInsertBlock()
	e.builder.SetInsertPointAtEnd(e.currentAllocBasicBlock)
	slot := e.builder.CreateAlloca(slotType, name)
	e.builder.SetInsertPointAtEnd(currBasicBlock)

	e.variablesMap[name] = slot
	e.variableTypesMap[name] = slotType
	return slot, slotType
}

func (e *Emitter) emitForLetStmt(letStmt *ast.LetStmt) {
	value := e.emitForExpr(letStmt.Value)
	if e.err != nil {
		return
	}

	slot, slotType := e.slot(letStmt.Name)
	e.builder.CreateStore(e.convert(value, slotType, letStmt.StartToken), slot)
}

func (e *Emitter) emitForExprStmt(exprStmt *ast.ExprStmt) {
	if call, ok := exprStmt.Expr.(*ast.CallExpr); ok && call.Name == "print" {
		e.emitForPrint(call)
		return
	}

	e.emitForExpr(exprStmt.Expr)
}

func (e *Emitter) emitForPrint(call *ast.CallExpr) {
	value := e.emitForExpr(call.Arg)
	if e.err != nil {
		return
	}

	var format string
	switch value.Type().TypeKind() {
	case llvm.IntegerTypeKind:
		format = "%lld\n"
		value = e.convert(value, e.i64Type, call.StartToken)
	case llvm.DoubleTypeKind:
		format = "%g\n"
	default:
		format = "%s\n"
	}

	e.builder.CreateCall(e.printfType, e.printfFunc, []llvm.Value{e.format(format), value}, "")
}

func (e *Emitter) format(format string) llvm.Value {
	if value, ok := e.formatsMap[format]; ok {
		return value
	}
	value := e.builder.CreateGlobalStringPtr(format, "fmt")
	e.formatsMap[format] = value
	return value
}

// terminate starts a fresh block after a terminator so that statements
// following a return, break or continue still have somewhere to go.
func (e *Emitter) terminate() {
	deadBasicBlock := e.context.AddBasicBlock(e.currentFunc, "dead")
	e.builder.SetInsertPointAtEnd(deadBasicBlock)
}

func (e *Emitter) emitForIfStmt(ifStmt *ast.IfStmt) {
	condValue := e.emitForCond(ifStmt.Cond)
	if e.err != nil {
		return
	}

	ifBody := e.context.AddBasicBlock(e.currentFunc, "ifbody")
	elseBlock := e.context.AddBasicBlock(e.currentFunc, "ifelse")
	afterIfBlock := e.context.AddBasicBlock(e.currentFunc, "ifafter")

	e.builder.CreateCondBr(condValue, ifBody, elseBlock)

	e.builder.SetInsertPointAtEnd(ifBody)
	e.emitForStmts(ifStmt.Then)
	e.builder.CreateBr(afterIfBlock)

	e.builder.SetInsertPointAtEnd(elseBlock)
	e.emitForStmts(ifStmt.Else)
	e.builder.CreateBr(afterIfBlock)

	e.builder.SetInsertPointAtEnd(afterIfBlock)
}

func (e *Emitter) emitForWhileStmt(whileStmt *ast.WhileStmt) {
	checkBlock := e.context.AddBasicBlock(e.currentFunc, "whilecheck")
	bodyBlock := e.context.AddBasicBlock(e.currentFunc, "whilebody")
	afterBlock := e.context.AddBasicBlock(e.currentFunc, "whileafter")

	e.builder.CreateBr(checkBlock)
	e.builder.SetInsertPointAtEnd(checkBlock)
	condValue := e.emitForCond(whileStmt.Cond)
	if e.err != nil {
		return
	}
	e.builder.CreateCondBr(condValue, bodyBlock, afterBlock)

	e.loopsContinueBasicBlocks = append(e.loopsContinueBasicBlocks, checkBlock)
	e.loopsBreakBasicBlock = append(e.loopsBreakBasicBlock, afterBlock)

	e.builder.SetInsertPointAtEnd(bodyBlock)
	e.emitForStmts(whileStmt.Body)
	e.builder.CreateBr(checkBlock)

	e.builder.SetInsertPointAtEnd(afterBlock)
	e.loopsContinueBasicBlocks = e.loopsContinueBasicBlocks[:len(e.loopsContinueBasicBlocks)-1]
	e.loopsBreakBasicBlock = e.loopsBreakBasicBlock[:len(e.loopsBreakBasicBlock)-1]
}

func (e *Emitter) emitForLoopStmt(loopStmt *ast.LoopStmt) {
	bodyBlock := e.context.AddBasicBlock(e.currentFunc, "loopbody")
	afterBlock := e.context.AddBasicBlock(e.currentFunc, "loopafter")

	e.loopsContinueBasicBlocks = append(e.loopsContinueBasicBlocks, bodyBlock)
	e.loopsBreakBasicBlock = append(e.loopsBreakBasicBlock, afterBlock)

	e.builder.CreateBr(bodyBlock)
	e.builder.SetInsertPointAtEnd(bodyBlock)
	e.emitForStmts(loopStmt.Body)
	e.builder.CreateBr(bodyBlock)

	e.builder.SetInsertPointAtEnd(afterBlock)
	e.loopsContinueBasicBlocks = e.loopsContinueBasicBlocks[:len(e.loopsContinueBasicBlocks)-1]
	e.loopsBreakBasicBlock = e.loopsBreakBasicBlock[:len(e.loopsBreakBasicBlock)-1]
}

func (e *Emitter) emitForReturnStmt(returnStmt *ast.ReturnStmt) {
	if returnStmt.Expr == nil {
		e.builder.CreateRet(llvm.ConstInt(e.i32Type, 0, false))
		e.terminate()
		return
	}

	value := e.emitForExpr(returnStmt.Expr)
	if e.err != nil {
		return
	}
	value = e.convert(value, e.i64Type, returnStmt.StartToken)
	e.builder.CreateRet(e.builder.CreateTrunc(value, e.i32Type, "rettmp"))
	e.terminate()
}

func (e *Emitter) emitForJump(targets []llvm.BasicBlock, construct string, token *lexer.Token) {
	if len(targets) == 0 {
		e.fail(unsupported(construct+" outside of a loop", token))
		return
	}

	e.builder.CreateBr(targets[len(targets)-1])
	e.terminate()
}

func (e *Emitter) emitForCond(expr ast.Expr) llvm.Value {
	value := e.emitForExpr(expr)
	if e.err != nil {
		return value
	}

	switch value.Type().TypeKind() {
	case llvm.IntegerTypeKind:
		if value.Type().IntTypeWidth() == 1 {
			return value
		}
		return e.builder.CreateICmp(llvm.IntNE, value, llvm.ConstInt(value.Type(), 0, false), "condtmp")
	case llvm.DoubleTypeKind:
		return e.builder.CreateFCmp(llvm.FloatONE, value, llvm.ConstFloat(e.doubleType, 0), "condtmp")
	}

	e.fail(unsupported("string used as a condition", expr.FirstToken()))
	return llvm.ConstInt(e.i1Type, 0, false)
}

// convert turns value into type t. Booleans widen to i64 first; strings do
// not convert to or from numbers.
func (e *Emitter) convert(value llvm.Value, t llvm.Type, token *lexer.Token) llvm.Value {
	from := value.Type()
	if from == t {
		return value
	}

	if from.TypeKind() == llvm.IntegerTypeKind && from.IntTypeWidth() == 1 {
		value = e.builder.CreateZExt(value, e.i64Type, "zexttmp")
		from = e.i64Type
		if from == t {
			return value
		}
	}

	switch {
	case from == e.i64Type && t == e.doubleType:
		return e.builder.CreateSIToFP(value, t, "convtmp")
	case from == e.doubleType && t == e.i64Type:
		return e.builder.CreateFPToSI(value, t, "convtmp")
	}

	e.fail(unsupported("conversion between string and number", token))
	return llvm.Undef(t)
}

func (e *Emitter) emitForExpr(expr ast.Expr) llvm.Value {
	switch expr := expr.(type) {
	case *ast.IntExpr:
		return llvm.ConstInt(e.i64Type, uint64(expr.Value), true)
	case *ast.FloatExpr:
		return llvm.ConstFloat(e.doubleType, expr.Value)
	case *ast.StringExpr:
		return e.builder.CreateGlobalStringPtr(expr.Value, "str")
	case *ast.IdentExpr:
		return e.emitForIdentExpr(expr)
	case *ast.BinaryExpr:
		return e.emitForBinExpr(expr)
	case *ast.CallExpr:
		e.fail(unsupported(fmt.Sprintf("call to '%s'", expr.Name), expr.StartToken))
	default:
		e.fail(unsupported(fmt.Sprintf("expression %T", expr), expr.FirstToken()))
	}
	return llvm.ConstInt(e.i64Type, 0, false)
}

func (e *Emitter) emitForIdentExpr(identExpr *ast.IdentExpr) llvm.Value {
	if _, ok := e.variablesMap[identExpr.Value]; !ok {
		e.fail(unsupported(fmt.Sprintf("undeclared identifier '%s'", identExpr.Value), identExpr.StartToken))
		return llvm.ConstInt(e.i64Type, 0, false)
	}

	slot, slotType := e.slot(identExpr.Value)
	return e.builder.CreateLoad(slotType, slot, "loadtmp")
}

func (e *Emitter) emitForAssignExpr(binExpr *ast.BinaryExpr) llvm.Value {
	target := binExpr.Left.(*ast.IdentExpr)
	if _, ok := e.variablesMap[target.Value]; !ok {
		e.fail(unsupported(fmt.Sprintf("assignment to undeclared identifier '%s'", target.Value), target.StartToken))
		return llvm.ConstInt(e.i64Type, 0, false)
	}

	value := e.emitForExpr(binExpr.Right)
	if e.err != nil {
		return value
	}

	slot, slotType := e.slot(target.Value)
	value = e.convert(value, slotType, binExpr.Op)
	e.builder.CreateStore(value, slot)
	return value
}

func (e *Emitter) emitForBinExpr(binExpr *ast.BinaryExpr) llvm.Value {
	if binExpr.Op.Kind == lexer.ASSIGN {
		return e.emitForAssignExpr(binExpr)
	}

	leftValue := e.emitForExpr(binExpr.Left)
	rightValue := e.emitForExpr(binExpr.Right)
	if e.err != nil {
		return leftValue
	}

	if leftValue.Type() == e.ptrType || rightValue.Type() == e.ptrType {
		e.fail(unsupported(fmt.Sprintf("operator '%s' on strings", binExpr.Op.Kind.Symbol()), binExpr.Op))
		return llvm.ConstInt(e.i64Type, 0, false)
	}

	isFloat := leftValue.Type() == e.doubleType || rightValue.Type() == e.doubleType
	operandType := e.i64Type
	if isFloat {
		operandType = e.doubleType
	}
	leftValue = e.convert(leftValue, operandType, binExpr.Op)
	rightValue = e.convert(rightValue, operandType, binExpr.Op)

	switch binExpr.Op.Kind {
	case lexer.PLUS:
		if isFloat {
			return e.builder.CreateFAdd(leftValue, rightValue, "addtmp")
		}
		return e.builder.CreateAdd(leftValue, rightValue, "addtmp")
	case lexer.MINUS:
		if isFloat {
			return e.builder.CreateFSub(leftValue, rightValue, "subtmp")
		}
		return e.builder.CreateSub(leftValue, rightValue, "subtmp")
	case lexer.ASTERISK:
		if isFloat {
			return e.builder.CreateFMul(leftValue, rightValue, "multmp")
		}
		return e.builder.CreateMul(leftValue, rightValue, "multmp")
	case lexer.SLASH:
		if isFloat {
			return e.builder.CreateFDiv(leftValue, rightValue, "divtmp")
		}
		return e.builder.CreateSDiv(leftValue, rightValue, "divtmp")
	}

	intPredicates := map[lexer.TokenKind]llvm.IntPredicate{
		lexer.EQ:  llvm.IntEQ,
		lexer.NEQ: llvm.IntNE,
		lexer.LT:  llvm.IntSLT,
		lexer.LEQ: llvm.IntSLE,
		lexer.GT:  llvm.IntSGT,
		lexer.GEQ: llvm.IntSGE,
	}
	floatPredicates := map[lexer.TokenKind]llvm.FloatPredicate{
		lexer.EQ:  llvm.FloatOEQ,
		lexer.NEQ: llvm.FloatONE,
		lexer.LT:  llvm.FloatOLT,
		lexer.LEQ: llvm.FloatOLE,
		lexer.GT:  llvm.FloatOGT,
		lexer.GEQ: llvm.FloatOGE,
	}

	if isFloat {
		if predicate, ok := floatPredicates[binExpr.Op.Kind]; ok {
			return e.builder.CreateFCmp(predicate, leftValue, rightValue, "cmptmp")
		}
	} else if predicate, ok := intPredicates[binExpr.Op.Kind]; ok {
		return e.builder.CreateICmp(predicate, leftValue, rightValue, "cmptmp")
	}

	e.fail(unsupported(fmt.Sprintf("operator '%s'", binExpr.Op.Kind.Symbol()), binExpr.Op))
	return llvm.ConstInt(e.i64Type, 0, false)
}
