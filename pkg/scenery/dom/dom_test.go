package dom

import (
	"errors"
	"strings"
	"testing"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const markup = `<ul id="pagination">
  <li class="dot active">1</li>
  <li class="dot">2</li>
  <li class="dot extra">3</li>
</ul>
<button class="scene__goto" data-scene-index="2">go</button>`

func TestFind_DocumentOrderAndIdentity(t *testing.T) {
	doc, err := ParseString(markup)
	require.NoError(t, err)

	first, err := doc.Find("#pagination li")
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "1", first[0].Text())
	assert.Equal(t, "3", first[2].Text())

	again, err := doc.Find(".dot")
	require.NoError(t, err)
	for i := range first {
		assert.Same(t, first[i], again[i])
	}
}

func TestFind_GroupAndInvalid(t *testing.T) {
	doc, err := ParseString(markup)
	require.NoError(t, err)

	els, err := doc.Find(".extra, button")
	require.NoError(t, err)
	assert.Len(t, els, 2)

	_, err = doc.Find("[[[")
	assert.Error(t, err)

	none, err := doc.First(".missing")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestClasses(t *testing.T) {
	doc, err := ParseString(markup)
	require.NoError(t, err)
	dots, err := doc.Find(".dot")
	require.NoError(t, err)

	dots[0].AddClass("active")
	assert.Equal(t, []string{"dot", "active"}, dots[0].Classes())

	dots[0].RemoveClass("active")
	dots[0].RemoveClass("active")
	assert.Equal(t, []string{"dot"}, dots[0].Classes())

	dots[1].AddClass("active")
	assert.True(t, dots[1].HasClass("active"))

	var b strings.Builder
	require.NoError(t, doc.Render(&b))
	assert.Contains(t, b.String(), `<li class="dot active">2</li>`)
	assert.Contains(t, b.String(), `<li class="dot">1</li>`)
}

func TestAddClass_CreatesAttribute(t *testing.T) {
	doc, err := ParseString(`<p id="plain">x</p>`)
	require.NoError(t, err)
	p, err := doc.First("#plain")
	require.NoError(t, err)

	p.RemoveClass("active")
	p.AddClass("active")
	assert.Equal(t, []string{"active"}, p.Classes())
	assert.Equal(t, "p", p.Tag())
	assert.Equal(t, "plain", p.ID())
}

func TestData(t *testing.T) {
	doc, err := ParseString(markup)
	require.NoError(t, err)
	btn, err := doc.First("button")
	require.NoError(t, err)

	v, ok := btn.Data("sceneIndex")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = btn.Data("other")
	assert.False(t, ok)

	btn.SetData("returnTo", "0")
	v, ok = btn.Attr("data-return-to")
	assert.True(t, ok)
	assert.Equal(t, "0", v)
}

func TestDataAttr(t *testing.T) {
	assert.Equal(t, "data-scene-index", DataAttr("sceneIndex"))
	assert.Equal(t, "data-step", DataAttr("step"))
	assert.Equal(t, "data-a-b-c", DataAttr("aBC"))
}

func TestClick_RunsAllListeners(t *testing.T) {
	doc, err := ParseString(markup)
	require.NoError(t, err)
	btn, err := doc.First("button")
	require.NoError(t, err)

	var calls []string
	first := errors.New("first failed")
	btn.OnClick(func(evt *scenery.Event) error {
		calls = append(calls, "a")
		assert.Same(t, btn, evt.Target)
		assert.Equal(t, "click", evt.Source)
		return first
	})
	btn.OnClick(func(*scenery.Event) error {
		calls = append(calls, "b")
		return nil
	})

	err = btn.Click()
	assert.ErrorIs(t, err, first)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestQueryAll_ImplementsDocument(t *testing.T) {
	doc, err := ParseString(markup)
	require.NoError(t, err)

	var d scenery.Document = doc
	els, err := d.QueryAll(".dot")
	require.NoError(t, err)
	assert.Len(t, els, 3)
}
