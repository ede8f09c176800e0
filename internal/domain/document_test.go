package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentPreservesKeyOrder(t *testing.T) {
	raw := `{"zeta":1,"alpha":"two","mid":true}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Keys())

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, raw, string(out))
	// order must survive the round trip byte for byte
	require.Equal(t, raw, string(out))
}

func TestDocumentNestedValues(t *testing.T) {
	raw := `{"rules":{"autoAssign":true,"threshold":5},"tags":["vpn","email"],"note":null}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	rules, ok := doc.Get("rules")
	require.True(t, ok)
	require.Equal(t, KindObject, rules.Kind)
	threshold, ok := rules.Obj.Get("threshold")
	require.True(t, ok)
	require.Equal(t, 5.0, threshold.Num)

	tags, ok := doc.Get("tags")
	require.True(t, ok)
	require.Equal(t, KindArray, tags.Kind)
	require.Len(t, tags.Arr, 2)

	note, ok := doc.Get("note")
	require.True(t, ok)
	require.Equal(t, KindNull, note.Kind)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, raw, string(out))
}

func TestDocumentCloneIsIndependent(t *testing.T) {
	var doc Document
	nested := &Document{}
	nested.Set("inner", String("before"))
	doc.Set("cfg", Object(nested))

	clone := doc.Clone()
	nested.Set("inner", String("after"))

	got, ok := clone.Get("cfg")
	require.True(t, ok)
	inner, ok := got.Obj.Get("inner")
	require.True(t, ok)
	require.Equal(t, "before", inner.Str)
}

func TestDocumentZeroValueIsEmptyObject(t *testing.T) {
	var doc Document
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, "{}", string(out))

	doc.Set("k", Number(1))
	doc.Set("k", Number(2))
	require.Equal(t, 1, doc.Len())
	v, _ := doc.Get("k")
	require.Equal(t, 2.0, v.Num)
}

func TestDocumentRejectsNonObject(t *testing.T) {
	var doc Document
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &doc))
	require.Error(t, json.Unmarshal([]byte(`"str"`), &doc))
}
