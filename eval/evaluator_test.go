/*
File : spicy/eval/evaluator_test.go
*/
package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spicylang/spicy/lexer"
	"github.com/spicylang/spicy/parser"
	"github.com/spicylang/spicy/resolver"
)

// runSource drives the full tree-walk pipeline over src and returns the
// printed output plus the first runtime error, if any.
func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	lex := lexer.NewLexer(src)
	tokens := lex.ScanTokens()
	assert.Empty(t, lex.Errors)

	par := parser.NewParser(tokens)
	program := par.ParseProgram()
	assert.Empty(t, par.Errors)

	var out bytes.Buffer
	evaluator := NewEvaluator(&out)
	res := resolver.NewResolver(evaluator)
	res.ResolveProgram(program)
	assert.Empty(t, res.Errors)

	err := evaluator.ExecProgram(program)
	return out.String(), err
}

func TestEvaluator_Arithmetic(t *testing.T) {
	out, err := runSource(t, `print 1+2*3;`)
	assert.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestEvaluator_GroupingAndUnary(t *testing.T) {
	out, err := runSource(t, `print -(1+2)*3; print !false; print !nil; print !0;`)
	assert.NoError(t, err)
	assert.Equal(t, "-9\ntrue\ntrue\nfalse\n", out)
}

func TestEvaluator_StringConcat(t *testing.T) {
	out, err := runSource(t, `print "a" + "b";`)
	assert.NoError(t, err)
	assert.Equal(t, "ab\n", out)
}

func TestEvaluator_MixedAddition_IsError(t *testing.T) {
	_, err := runSource(t, `print "a" + 1;`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be numbers or strings.")
}

func TestEvaluator_Comparisons(t *testing.T) {
	out, err := runSource(t, `print 1 < 2; print 2 <= 2; print 3 > 4; print 1 == 1; print "a" != "b";`)
	assert.NoError(t, err)
	assert.Equal(t, "true\ntrue\nfalse\ntrue\ntrue\n", out)
}

func TestEvaluator_LogicalShortCircuit(t *testing.T) {
	out, err := runSource(t, `print true or missing(); print false and missing(); print nil or "fallback";`)
	assert.NoError(t, err)
	assert.Equal(t, "true\nfalse\nfallback\n", out)
}

func TestEvaluator_Recursion_Fib(t *testing.T) {
	src := `
fun fib(n) { if (n<2) return n; return fib(n-1)+fib(n-2); }
print fib(10);
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestEvaluator_ForLoop(t *testing.T) {
	out, err := runSource(t, `var a = 0; for (var i=0; i<5; i=i+1) a = a+i; print a;`)
	assert.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestEvaluator_WhileLoop_ReturnBubbles(t *testing.T) {
	src := `
fun firstOver(limit) {
    var i = 0;
    while (true) {
        if (i > limit) return i;
        i = i + 1;
    }
}
print firstOver(3);
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestEvaluator_ClosureCounter(t *testing.T) {
	src := `
fun makeCounter(){var c=0;fun count(){c=c+1;return c;}return count;}
var c=makeCounter(); print c(); print c(); print c();
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestEvaluator_ClosuresShareCapturedVariable(t *testing.T) {
	src := `
fun makePair() {
    var v = 1;
    fun get() { return v; }
    fun bump() { v = v + 10; }
    var fns = [];
    fns <- get;
    fns <- bump;
    return fns;
}
var fns = makePair();
print fns[0]();
fns[1]();
print fns[0]();
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "1\n11\n", out)
}

func TestEvaluator_ClassWithSuper(t *testing.T) {
	src := `
class A { greet(){print "hi from A";} }
class B : A { greet(){super.greet(); print "and B";} }
B().greet();
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "hi from A\nand B\n", out)
}

func TestEvaluator_SuperThroughChain(t *testing.T) {
	src := `
class A { m() { return "A"; } }
class B : A { m() { return "B<" + super.m(); } }
class C : B { m() { return "C<" + super.m(); } }
print C().m();
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "C<B<A\n", out)
}

func TestEvaluator_InitializerReturnsInstance(t *testing.T) {
	src := `
class Point {
    init(x, y) { this.x = x; this.y = y; }
    sum() { return this.x + this.y; }
}
var p = Point(3, 4);
print p.sum();
print p.x;
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "7\n3\n", out)
}

func TestEvaluator_MethodBinding_SharesInstanceState(t *testing.T) {
	src := `
class Counter {
    init() { this.n = 0; }
    bump() { this.n = this.n + 1; return this.n; }
}
var c = Counter();
print c.bump();
print c.bump();
var m = c.bump;
print m();
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestEvaluator_InstanceEqualityIsIdentity(t *testing.T) {
	src := `
class A { }
var a = A();
var b = A();
print a == a;
print a == b;
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "true\nfalse\n", out)
}

func TestEvaluator_CallableEqualityByName(t *testing.T) {
	src := `
fun f() { return 1; }
fun g() { return 1; }
print f == f;
print f == g;
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "true\nfalse\n", out)
}

func TestEvaluator_UninitializedVariableRead_IsError(t *testing.T) {
	_, err := runSource(t, `var x; print x;`)
	assert.Error(t, err)
	assert.Equal(t, "[line 1] Error at 'x': Uninitialized variable.", err.Error())
}

func TestEvaluator_UndefinedVariable_IsError(t *testing.T) {
	_, err := runSource(t, `print ghost;`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable.")
}

func TestEvaluator_ArityMismatch_IsError(t *testing.T) {
	_, err := runSource(t, `fun add(a, b) { return a + b; } add(1);`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestEvaluator_CallNonFunction_IsError(t *testing.T) {
	_, err := runSource(t, `var x = 1; x();`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Attempted to invoke a non-function.")
}

func TestEvaluator_PropertyOnNonInstance_IsError(t *testing.T) {
	_, err := runSource(t, `var x = 1; print x.y;`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Only class instances have properties.")
}

func TestEvaluator_NonClassSuperclass_IsError(t *testing.T) {
	_, err := runSource(t, `var NotAClass = 1; class B : NotAClass { }`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Superclass must be a class")
}

func TestEvaluator_Lists(t *testing.T) {
	src := `
var l = [];
l <- 1;
l <- 2;
0 -> l;
print l;
print len(l);
print l[1];
l[1] = 9;
print l;
print front(l);
print back(l);
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "[0, 1, 2]\n3\n1\n[0, 9, 2]\n0\n2\n", out)
}

func TestEvaluator_ListIndexOutOfRange_IsError(t *testing.T) {
	_, err := runSource(t, `var l = []; print l[0];`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "List index out of range.")
}

func TestEvaluator_IndexNonList_IsError(t *testing.T) {
	_, err := runSource(t, `var x = 1; print x[0];`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Only lists can be indexed.")
}

func TestEvaluator_AppendToNonList_IsError(t *testing.T) {
	_, err := runSource(t, `var x = 1; x <- 2;`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a list")
}

func TestEvaluator_PrefixAndPostfixStep(t *testing.T) {
	src := `
var i = 0;
print i++;
print i;
print ++i;
print --i;
print i--;
print i;
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n1\n1\n0\n", out)
}

func TestEvaluator_Lambdas(t *testing.T) {
	src := `
var double = \(x) -> x * 2;
var apply = \(f, v) { return f(v); };
print double(21);
print apply(double, 5);
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "42\n10\n", out)
}

func TestEvaluator_ArrowFunctionDeclaration(t *testing.T) {
	out, err := runSource(t, `fun inc(x) -> x + 1; print inc(41);`)
	assert.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestEvaluator_PipeChaining(t *testing.T) {
	src := `
fun f(x) -> x + 1;
fun g(x) -> x * 2;
print (f | g)(10);
var h = f | g;
print h(1);
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	// f(g(x)) both times
	assert.Equal(t, "21\n3\n", out)
}

func TestEvaluator_Builtins(t *testing.T) {
	src := `
print sqrt(16);
print str(12) + "!";
print len("spicy");
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "4\n12!\n5\n", out)
}

func TestEvaluator_BlockScoping(t *testing.T) {
	src := `
var a = "global";
{
    var a = "inner";
    print a;
}
print a;
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "inner\nglobal\n", out)
}

func TestEvaluator_ClassesAreReassignableValues(t *testing.T) {
	src := `
class A { tag() { return "A"; } }
class B { tag() { return "B"; } }
var cls = A;
print cls().tag();
cls = B;
print cls().tag();
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "A\nB\n", out)
}

func TestEvaluator_FieldsShadowMethods(t *testing.T) {
	src := `
class A { v() { return "method"; } }
var a = A();
print a.v();
a.v = "field";
print a.v;
`
	out, err := runSource(t, src)
	assert.NoError(t, err)
	assert.Equal(t, "method\nfield\n", out)
}
