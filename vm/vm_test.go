package vm

import (
	"bytes"
	"context"
	"testing"

	"github.com/felipeyepez/patito/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) string {
	t.Helper()
	prog, err := compiler.Compile(src)
	require.NoError(t, err)

	var out bytes.Buffer
	err = Execute(context.Background(), prog, &out)
	require.NoError(t, err)
	return out.String()
}

func TestExecuteArithmeticAndPrint(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 4 + 3 * 2;
  cout(x);
}
end`
	assert.Equal(t, "10\n", run(t, src))
}

func TestExecuteDivisionIsAlwaysFloat(t *testing.T) {
	src := `program demo;
var x : float;
{
  x = 9 / 2;
  cout(x);
}
end`
	assert.Equal(t, "4.5\n", run(t, src))
}

func TestExecuteIfElse(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 5;
  if (x > 3) {
    cout("big");
  } else {
    cout("small");
  };
}
end`
	assert.Equal(t, "big\n", run(t, src))
}

func TestExecuteIfElseFalseBranch(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 1;
  if (x > 3) {
    cout("big");
  } else {
    cout("small");
  };
}
end`
	assert.Equal(t, "small\n", run(t, src))
}

func TestExecuteDoWhileLoop(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 0;
  do {
    cout(x);
    x = x + 1;
  } while (x < 3);
}
end`
	assert.Equal(t, "0\n1\n2\n", run(t, src))
}

func TestExecuteUnaryMinus(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = -5 + 2;
  cout(x);
}
end`
	assert.Equal(t, "-3\n", run(t, src))
}

func TestExecuteMultiplePrintArguments(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 7;
  cout("x = ", x);
}
end`
	assert.Equal(t, "x = 7\n", run(t, src))
}

func TestExecuteDivisionByZeroIsARuntimeError(t *testing.T) {
	src := `program demo;
var x, y : int;
{
  x = 1;
  y = 0;
  cout(x / y);
}
end`
	prog, err := compiler.Compile(src)
	require.NoError(t, err)

	var out bytes.Buffer
	err = Execute(context.Background(), prog, &out)
	require.Error(t, err)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
}

func TestExecuteRespectsContextCancellation(t *testing.T) {
	src := `program demo;
var x : int;
{
  x = 0;
  do {
    x = x + 1;
  } while (x < 1000000);
}
end`
	prog, err := compiler.Compile(src)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = Execute(ctx, prog, &out)
	require.Error(t, err)
}
