package interpreter

import (
	"testing"
	"time"
)

func TestProgramArithmeticPrecedence(t *testing.T) {
	if got := mustRun(t, "print 1 + 2 * 3;\nprint (1 + 2) * 3;\nprint 10 / 4;\nprint -2 - -3;"); got != "7\n9\n2.5\n1\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramStringConcatenation(t *testing.T) {
	got := mustRun(t, `print "1" + 1; print 1 + "1"; print "a" + "b"; print "v" + 0.5;`)
	if got != "11\n11\nab\nv0.5\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramDivisionAndMultiplicationByZero(t *testing.T) {
	_, err := runProgram(t, "print 10 / 0;")
	expectRuntimeError(t, err, "Runtime error at '/': Division by zero. [line 1]")

	_, err = runProgram(t, "print 10 * 0;")
	expectRuntimeError(t, err, "Runtime error at '*': Multiplication by zero. [line 1]")

	if got := mustRun(t, "print 0 * 10; print 0 / 10;"); got != "0\n0\n" {
		t.Fatalf("zero on the left is allowed, got %q", got)
	}
}

func TestProgramShadowing(t *testing.T) {
	got := mustRun(t, `
var a = "global";
{
  var a = "local";
  print a;
}
print a;
`)
	if got != "local\nglobal\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramStaticResolutionIgnoresLaterShadow(t *testing.T) {
	got := mustRun(t, `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "block";
  show();
  print a;
}
`)
	if got != "global\nglobal\nblock\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramClosureCounter(t *testing.T) {
	got := mustRun(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
var counter = makeCounter();
print counter();
print counter();
var other = makeCounter();
print other();
`)
	if got != "1\n2\n1\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramClosuresShareBinding(t *testing.T) {
	got := mustRun(t, `
var get;
var set;
fun pair() {
  var value = "initial";
  fun getter() { return value; }
  fun setter(v) { value = v; }
  get = getter;
  set = setter;
}
pair();
print get();
set("updated");
print get();
`)
	if got != "initial\nupdated\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramClosureOutlivesBlock(t *testing.T) {
	got := mustRun(t, `
var f;
{
  var x = 1;
  fun g() { x = x + 1; return x; }
  f = g;
}
print f();
print f();
`)
	if got != "2\n3\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramClassInitAndMethods(t *testing.T) {
	got := mustRun(t, `
class C {
  init(x) { this.x = x; }
  get() { return this.x; }
}
var o = C(5);
print o.get();
print o;
print C;
var m = o.get;
o.x = 7;
print m();
print o.init(1) == o;
`)
	if got != "5\n<C> instance\n<fn>\n7\ntrue\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramFieldShadowsMethod(t *testing.T) {
	got := mustRun(t, `
class Box { size() { return 1; } }
var b = Box();
print b.size();
b.size = 5;
print b.size;
`)
	if got != "1\n5\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramForLoopLeavesNoBinding(t *testing.T) {
	out, err := runProgram(t, "for (var i = 0; i < 3; i = i + 1) print i;\nprint i;")
	if out != "0\n1\n2\n" {
		t.Fatalf("output = %q", out)
	}
	expectRuntimeError(t, err, "Runtime error at 'i': Undefined variable 'i'. [line 2]")
}

func TestProgramLogicalOperatorsReturnOperands(t *testing.T) {
	got := mustRun(t, `
print nil or "yes";
print 0 and "x";
print false and undefinedFunction();
print "first" or undefinedFunction();
print !nil;
`)
	if got != "yes\nx\nfalse\nfirst\ntrue\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramConditionalExpression(t *testing.T) {
	if got := mustRun(t, `print 1 < 2 ? "a" : "b"; print nil ? 1 : false ? 2 : 3;`); got != "a\n3\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramEquality(t *testing.T) {
	got := mustRun(t, `
class C {}
var a = C();
var b = a;
print nil == nil;
print 1 == "1";
print "x" != "y";
print clock == clock;
print a == b;
print a == C();
`)
	if got != "true\nfalse\ntrue\nfalse\ntrue\nfalse\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramStringComparison(t *testing.T) {
	if got := mustRun(t, `print "apple" < "banana"; print "b" >= "b"; print 3 > 2;`); got != "true\ntrue\ntrue\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramRecursion(t *testing.T) {
	got := mustRun(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	if got != "55\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramMutualRecursionBetweenGlobals(t *testing.T) {
	got := mustRun(t, `
fun isEven(n) { if (n == 0) return true; return isOdd(n - 1); }
fun isOdd(n) { if (n == 0) return false; return isEven(n - 1); }
print isEven(10);
`)
	if got != "true\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramWhileLoop(t *testing.T) {
	got := mustRun(t, `
var i = 0;
var total = 0;
while (i < 5) {
  total = total + i;
  i = i + 1;
}
print total;
`)
	if got != "10\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramFunctionWithoutReturnYieldsNil(t *testing.T) {
	if got := mustRun(t, "fun f() {} print f();"); got != "nil\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestProgramClockNative(t *testing.T) {
	fixed := func() time.Time { return time.Unix(3, 500000000) }
	if got := mustRun(t, "print clock();", WithClock(fixed)); got != "3.5\n" {
		t.Fatalf("output = %q", got)
	}
}
