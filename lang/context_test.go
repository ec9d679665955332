package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corelang/core/internal/diag"
)

func idNamed(name string) *Id {
	return &Id{Tok: Token{Kind: Identifier, Lexeme: name}, Name: name}
}

func TestContext_DeclareAndHas(t *testing.T) {
	ctx := NewContext()
	assert.False(t, ctx.Has("X"))
	assert.NoError(t, ctx.Declare(idNamed("X")))
	assert.True(t, ctx.Has("X"))
}

func TestContext_Declare_Redeclaration(t *testing.T) {
	ctx := NewContext()
	assert.NoError(t, ctx.Declare(idNamed("X")))
	err := ctx.Declare(idNamed("X"))
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.IdentifierRedeclaration, derr.Kind)
}

func TestContext_Reference_Undeclared(t *testing.T) {
	ctx := NewContext()
	err := ctx.Reference(idNamed("X"))
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.UndeclaredIdentifier, derr.Kind)
}

func TestContext_Reference_Uninitialized(t *testing.T) {
	ctx := NewContext()
	assert.NoError(t, ctx.Declare(idNamed("X")))
	err := ctx.Reference(idNamed("X"))
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.Uninitialized, derr.Kind)
}

func TestContext_InitializeThenReference(t *testing.T) {
	ctx := NewContext()
	id := idNamed("X")
	assert.NoError(t, ctx.Declare(id))
	assert.NoError(t, ctx.Initialize(id))
	assert.NoError(t, ctx.Reference(id))
}

func TestContext_SetThenGet(t *testing.T) {
	ctx := NewContext()
	id := idNamed("X")
	assert.NoError(t, ctx.Declare(id))
	assert.NoError(t, ctx.Set(id, 42))
	val, err := ctx.Get(id)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), val)
}

func TestContext_Get_Uninitialized(t *testing.T) {
	ctx := NewContext()
	id := idNamed("X")
	assert.NoError(t, ctx.Declare(id))
	_, err := ctx.Get(id)
	assert.Error(t, err)
	derr, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.Uninitialized, derr.Kind)
}

func TestContext_DeclareList(t *testing.T) {
	ctx := NewContext()
	list := &IdList{Id: idNamed("X"), Next: &IdList{Id: idNamed("Y")}}
	assert.NoError(t, ctx.DeclareList(list))
	assert.True(t, ctx.Has("X"))
	assert.True(t, ctx.Has("Y"))
}
