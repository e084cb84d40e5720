package pagination

import (
	"image"
	"strings"
	"testing"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/BrandonKowalski/scenery/pkg/scenery/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLocalizer_Labels(t *testing.T) {
	en, err := NewLocalizer("en")
	require.NoError(t, err)
	assert.Equal(t, "Step 2 of 3", en.Label(1, 3))
	assert.Equal(t, "1 scene", en.Count(1))
	assert.Equal(t, "4 scenes", en.Count(4))

	de, err := NewLocalizer("de-AT")
	require.NoError(t, err)
	assert.Equal(t, language.German, de.Language())
	assert.Equal(t, "Schritt 1 von 3", de.Label(0, 3))
	assert.Equal(t, "2 Szenen", de.Count(2))
}

func TestLocalizer_Fallback(t *testing.T) {
	for _, lang := range []string{"", "not a tag", "ja"} {
		loc, err := NewLocalizer(lang)
		require.NoError(t, err)
		assert.Equal(t, language.English, loc.Language(), "lang=%q", lang)
		assert.Equal(t, "Step 3 of 3", loc.Label(2, 3))
	}
}

func TestDots_Geometry(t *testing.T) {
	d := Dots{Count: 3, Radius: 8, Gap: 4, Stroke: 2}

	w, h := d.Size()
	assert.Equal(t, 3*16+2*4+4, w)
	assert.Equal(t, 20, h)

	x, y := d.Center(1)
	assert.Equal(t, 2+8+20, x)
	assert.Equal(t, 10, y)
}

func TestDots_SVG(t *testing.T) {
	svg := Dots{Count: 3, Active: 1}.SVG()

	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Equal(t, 2, strings.Count(svg, `fill="none"`))
	assert.Contains(t, svg, `fill="#ffffff"`)
}

func TestDots_Rasterize(t *testing.T) {
	d := Dots{Count: 3, Active: 2, Radius: 10}
	img, err := d.Rasterize()
	require.NoError(t, err)

	w, h := d.Size()
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())

	ax, ay := d.Center(2)
	assert.Greater(t, img.RGBAAt(ax, ay).A, uint8(0), "active dot is filled")

	ix, iy := d.Center(0)
	assert.Equal(t, uint8(0), img.RGBAAt(ix, iy).A, "inactive dot is hollow")

	_, err = Dots{}.Rasterize()
	assert.Error(t, err)
}

func TestIndicator_FollowsNavigator(t *testing.T) {
	doc, err := dom.ParseString(`
		<div class="scene"></div><div class="scene"></div><div class="scene"></div>
		<ul id="pagination"><li class="active"></li><li></li><li></li></ul>
		<button class="scene__next"></button>`)
	require.NoError(t, err)

	loc, err := NewLocalizer("en")
	require.NoError(t, err)
	ind, err := NewIndicator(loc, Dots{Count: 3})
	require.NoError(t, err)
	assert.Equal(t, "Step 1 of 3", ind.Label())

	var labels []string
	ind.OnChange = func(label string, _ *image.RGBA) {
		labels = append(labels, label)
	}

	bullets, err := doc.QueryAll("#pagination li")
	require.NoError(t, err)

	_, err = scenery.New(doc, scenery.Options{
		PostTransition: scenery.ChainPostTransitions(MirrorClass(bullets, "active"), ind.Update),
	})
	require.NoError(t, err)

	next, err := doc.First(".scene__next")
	require.NoError(t, err)
	require.NoError(t, next.Click())
	require.NoError(t, next.Click())

	assert.Equal(t, 2, ind.Active())
	assert.Equal(t, []string{"Step 2 of 3", "Step 3 of 3"}, labels)
	assert.NotNil(t, ind.Image())

	lis, err := doc.Find("#pagination li")
	require.NoError(t, err)
	assert.False(t, lis[0].HasClass("active"))
	assert.False(t, lis[1].HasClass("active"))
	assert.True(t, lis[2].HasClass("active"))
}

func TestMirrorClass_SkipsMissingElements(t *testing.T) {
	doc, err := dom.ParseString(`<li></li>`)
	require.NoError(t, err)
	lis, err := doc.QueryAll("li")
	require.NoError(t, err)

	hook := MirrorClass(lis, "on")
	require.NoError(t, hook(scenery.Result{Current: 5, Previous: 0}, nil))
	require.NoError(t, hook(scenery.Result{Current: 0, Previous: 5}, nil))

	li, _ := doc.First("li")
	assert.True(t, li.HasClass("on"))
}
