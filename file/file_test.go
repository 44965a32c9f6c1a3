/*
File : spicy/file/file_test.go
*/
package file

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.spicy")
	assert.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRun_TreewalkScript(t *testing.T) {
	path := writeScript(t, `
fun fib(n) { if (n<2) return n; return fib(n-1)+fib(n-2); }
print fib(10);
`)
	var out, errOut bytes.Buffer
	err := Run(path, &out, &errOut, Options{Treewalk: true})
	assert.NoError(t, err)
	assert.Equal(t, "55\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRun_BytecodeScript(t *testing.T) {
	path := writeScript(t, `var a = 0; for (var i=0; i<5; i=i+1) a = a+i; print a;`)
	var out, errOut bytes.Buffer
	err := Run(path, &out, &errOut, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "10\n", out.String())
}

func TestRun_MissingFile_IsFatal(t *testing.T) {
	var out, errOut bytes.Buffer
	err := Run(filepath.Join(t.TempDir(), "absent.spicy"), &out, &errOut, Options{})
	assert.Error(t, err)
}

func TestRun_ParseErrors_ReportedNotFatal(t *testing.T) {
	path := writeScript(t, `var = 1;`)
	var out, errOut bytes.Buffer
	err := Run(path, &out, &errOut, Options{Treewalk: true})
	// language errors go to the error stream; the run itself succeeds
	assert.NoError(t, err)
	assert.Contains(t, errOut.String(), "Error")
	assert.Empty(t, out.String())
}

func TestRun_RuntimeError_Reported(t *testing.T) {
	path := writeScript(t, `var x; print x;`)
	var out, errOut bytes.Buffer
	err := Run(path, &out, &errOut, Options{Treewalk: true})
	assert.NoError(t, err)
	assert.Contains(t, errOut.String(), "Uninitialized variable.")
}

func TestRun_DumpBytecode(t *testing.T) {
	path := writeScript(t, `print 1+2;`)
	var out, errOut bytes.Buffer
	err := Run(path, &out, &errOut, Options{DumpBytecode: true})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "== script ==")
	assert.Contains(t, out.String(), "OP_ADD")
	assert.Contains(t, out.String(), "3\n")
}

func TestRun_DumpAST(t *testing.T) {
	path := writeScript(t, `print 1+2;`)
	var out, errOut bytes.Buffer
	err := Run(path, &out, &errOut, Options{Treewalk: true, DumpAST: true})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "(print (+ 1 2))")
}

func TestRun_BothEngines_AgreeOnSubset(t *testing.T) {
	src := `
var total = 0;
for (var i = 1; i <= 4; i = i + 1) {
    total = total + i * i;
}
if (total > 20) print "big"; else print "small";
print total;
`
	path := writeScript(t, src)

	var treeOut, treeErr bytes.Buffer
	assert.NoError(t, Run(path, &treeOut, &treeErr, Options{Treewalk: true}))

	var vmOut, vmErr bytes.Buffer
	assert.NoError(t, Run(path, &vmOut, &vmErr, Options{}))

	assert.Equal(t, treeOut.String(), vmOut.String())
	assert.Equal(t, "big\n30\n", vmOut.String())
}
