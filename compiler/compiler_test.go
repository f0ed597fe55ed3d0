package compiler

import (
	"testing"

	"github.com/felipeyepez/patito/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSimpleAssignAndPrint(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 4 + 3;
  cout("result:", x);
}
end`
	prog, err := Compile(src)
	require.NoError(t, err)
	require.Empty(t, prog.Warnings)

	x, ok := prog.Vars.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "int", string(x.Type))

	var ops []quad.Op
	for _, q := range prog.Quads {
		ops = append(ops, q.Op)
	}
	assert.Equal(t, []quad.Op{quad.Add, quad.Assig, quad.Print, quad.Print, quad.Print}, ops)
}

func TestCompileIfElse(t *testing.T) {
	src := `program demo;
var x : int;
{
  if (x > 0) {
    cout("positive");
  } else {
    cout("nonpositive");
  };
}
end`
	prog, err := Compile(src)
	require.NoError(t, err)

	require.Len(t, prog.Quads, 7)
	assert.Equal(t, quad.Gt, prog.Quads[0].Op)
	assert.Equal(t, quad.GotoF, prog.Quads[1].Op)
	assert.Equal(t, quad.Print, prog.Quads[2].Op)
	assert.Equal(t, quad.Print, prog.Quads[3].Op)
	assert.Equal(t, quad.Goto, prog.Quads[4].Op)
	assert.Equal(t, quad.Print, prog.Quads[5].Op)
	assert.Equal(t, quad.Print, prog.Quads[6].Op)

	// GotoF should have been patched to the start of the else branch,
	// which comes after the Goto that skips over it.
	require.True(t, prog.Quads[1].Result.Present)
	assert.Equal(t, 5, prog.Quads[1].Result.Index)

	// Goto (end of then-branch) should have been patched past the end.
	require.True(t, prog.Quads[4].Result.Present)
	assert.Equal(t, 7, prog.Quads[4].Result.Index)
}

func TestCompileDoWhile(t *testing.T) {
	src := `program demo;
var x : int;
{
  do {
    x = x + 1;
  } while (x < 10);
}
end`
	prog, err := Compile(src)
	require.NoError(t, err)

	last := prog.Quads[len(prog.Quads)-1]
	assert.Equal(t, quad.GotoT, last.Op)
	require.True(t, last.Result.Present)
	assert.Equal(t, 0, last.Result.Index)
}

func TestCompileUnaryMinus(t *testing.T) {
	src := `program demo;
var x, y : int;
{
  x = -5;
  y = x + -1;
}
end`
	prog, err := Compile(src)
	require.NoError(t, err)

	var subCount int
	for _, q := range prog.Quads {
		if q.Op == quad.Sub {
			subCount++
		}
	}
	// one Sub quad per unary minus (the "x + -1" addition itself is a
	// separate Add quad)
	assert.Equal(t, 2, subCount)
}

func TestCompileSharedSegmentBetweenVarsAndTemps(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 1 + 2;
}
end`
	prog, err := Compile(src)
	require.NoError(t, err)

	xVar, _ := prog.Vars.Lookup("x")
	addTemp := prog.Quads[0].Result.Addr
	assert.NotEqual(t, xVar.Address, addTemp)
	assert.Equal(t, xVar.Address.Segment(), addTemp.Segment())
}

func TestCompileDuplicateDeclarationIsAWarningNotAnError(t *testing.T) {
	src := `program demo;
var x : int;
    x : float;
{
  cout(x);
}
end`
	prog, err := Compile(src)
	require.NoError(t, err)
	require.Len(t, prog.Warnings, 1)
	assert.Equal(t, Semantic, prog.Warnings[0].Phase)

	x, _ := prog.Vars.Lookup("x")
	assert.Equal(t, "int", string(x.Type), "the first declaration should win")
}

func TestCompileUndeclaredVariableIsFatal(t *testing.T) {
	src := `program demo;
{
  cout(x);
}
end`
	_, err := Compile(src)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Semantic, ce.Phase)
}

func TestCompileTypeMismatchIsFatal(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = (x > 0) + 1;
}
end`
	_, err := Compile(src)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Semantic, ce.Phase)
}

func TestCompileMissingEndIsSyntactic(t *testing.T) {
	src := `program demo;
{
  cout(1);
}`
	_, err := Compile(src)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Syntactic, ce.Phase)
}

func TestCompileUnrecognizedCharacterIsLexical(t *testing.T) {
	src := "program demo; { cout(1 $ 2); } end"
	_, err := Compile(src)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Lexical, ce.Phase)
}

func TestCompileEmptyProgramIsSyntactic(t *testing.T) {
	_, err := Compile("")
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Syntactic, ce.Phase)
}
