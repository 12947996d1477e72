package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ungoquery "github.com/unfurl-go/unfurl/goquery"
)

func TestAmazonExtractor_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"product title element",
			`<html><body><span id="productTitle"> The Go Programming Language </span></body></html>`,
			"The Go Programming Language",
		},
		{
			"ebook title element",
			`<html><body><span id="ebooksProductTitle">Learning Go</span></body></html>`,
			"Learning Go",
		},
		{
			"meta title segment before first colon",
			`<html><head><meta name="title" content="Learning Go: An Idiomatic Approach : Amazon.de: Books"></head></html>`,
			"Learning Go",
		},
		{
			"no title at all",
			`<html><body></body></html>`,
			"",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := ungoquery.NewAmazonExtractor().Extract(tt.html, "https://www.amazon.com/dp/X")
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Title)
		})
	}
}

func TestAmazonExtractor_Author(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"book byline author link",
			`<div id="bylineInfo"><span class="author"><a href="#">Alan Donovan</a></span></div>`,
			"Alan Donovan",
		},
		{
			"contributor id link",
			`<div><a id="contributorNameID_1" href="#">Brian Kernighan</a></div>`,
			"Brian Kernighan",
		},
		{
			"generic author span link",
			`<span class="author"><a href="#">Jon Bodner</a></span>`,
			"Jon Bodner",
		},
		{
			"english store boilerplate",
			`<div id="bylineInfo"><a href="#">Visit the Lenovo Store</a></div>`,
			"Lenovo",
		},
		{
			"spanish store boilerplate",
			`<div id="bylineInfo"><a href="#">Visita la tienda de Lenovo</a></div>`,
			"Lenovo",
		},
		{
			"french store boilerplate",
			`<div id="bylineInfo"><a href="#">Visiter la boutique Lenovo</a></div>`,
			"Lenovo",
		},
		{
			"german store boilerplate",
			`<div id="bylineInfo"><a href="#">Besuche den Lenovo-Store</a></div>`,
			"Lenovo",
		},
		{
			"cleanup fallback strips brand prefix",
			`<div id="bylineInfo"><a href="#">Marke: Lenovo</a></div>`,
			"Lenovo",
		},
		{
			"no byline at all",
			`<div></div>`,
			"",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := ungoquery.NewAmazonExtractor().Extract("<html><body>"+tt.html+"</body></html>", "https://www.amazon.com/dp/X")
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Author)
		})
	}
}

func TestAmazonExtractor_Description(t *testing.T) {
	t.Parallel()

	t.Run("book description paragraphs are concatenated", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="bookDescription_feature_div">
			<div class="a-expander-content"><p>First paragraph.</p><p>Second paragraph.</p></div>
		</div></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "First paragraph. Second paragraph.", rec.Description)
	})

	t.Run("container text when no paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="bookDescription_feature_div">
			<div class="a-expander-content">Raw description text.</div>
		</div></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "Raw description text.", rec.Description)
	})

	t.Run("product description paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="productDescription"><p>A plain product.</p></div></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "A plain product.", rec.Description)
	})

	t.Run("first three feature bullets excluding legal disclaimer", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="feature-bullets"><ul>
			<li id="replacementPartsFitmentBullet"><span class="a-list-item">Legal disclaimer text</span></li>
			<li><span class="a-list-item">Bullet one</span></li>
			<li><span class="a-list-item">Bullet two</span></li>
			<li><span class="a-list-item">Bullet three</span></li>
			<li><span class="a-list-item">Bullet four</span></li>
		</ul></div></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "Bullet one Bullet two Bullet three", rec.Description)
	})

	t.Run("meta description rejected when site-name boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="description" content="Amazon.com: Online Shopping for Electronics, Apparel and more"></head></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Empty(t, rec.Description)
	})

	t.Run("meta description accepted when substantive", func(t *testing.T) {
		t.Parallel()

		desc := "A detailed description of the product that easily clears the fifty character bar."
		html := `<html><head><meta name="description" content="` + desc + `"></head></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, desc, rec.Description)
	})

	t.Run("long description truncated to 500", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("y", 700)
		html := `<html><body><div id="productDescription"><p>` + long + `</p></div></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Len(t, []rune(rec.Description), 500)
		assert.Equal(t, strings.Repeat("y", 497)+"...", rec.Description)
	})
}

func TestAmazonExtractor_Image(t *testing.T) {
	t.Parallel()

	t.Run("largest area candidate wins", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><img id="landingImage"
			data-a-dynamic-image='{"https://m.media.example/small.jpg":[300,300],"https://m.media.example/large.jpg":[600,600]}'
			src="https://m.media.example/src.jpg"></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.es/dp/XYZ")
		require.NoError(t, err)
		assert.Equal(t, "https://m.media.example/large.jpg", rec.Image)
	})

	t.Run("falls back to src on malformed attribute", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><img id="landingImage" data-a-dynamic-image="not json" src="https://m.media.example/src.jpg"></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "https://m.media.example/src.jpg", rec.Image)
	})

	t.Run("book cover element", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><img id="imgBlkFront" data-a-dynamic-image='{"https://m.media.example/cover.jpg":[500,700]}'></body></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "https://m.media.example/cover.jpg", rec.Image)
	})

	t.Run("falls back to og image when no product image", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:image" content="https://m.media.example/og.jpg"></head></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "https://m.media.example/og.jpg", rec.Image)
	})
}

func TestAmazonExtractor_CanonicalURL(t *testing.T) {
	t.Parallel()

	t.Run("canonical link preferred", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><link rel="canonical" href="https://www.amazon.com/gp/product/X"></head></html>`

		rec, err := ungoquery.NewAmazonExtractor().Extract(html, "https://www.amazon.com/dp/X?tag=ref")
		require.NoError(t, err)
		assert.Equal(t, "https://www.amazon.com/gp/product/X", rec.URL)
	})

	t.Run("original URL fallback", func(t *testing.T) {
		t.Parallel()

		rec, err := ungoquery.NewAmazonExtractor().Extract(`<html></html>`, "https://www.amazon.com/dp/X")
		require.NoError(t, err)
		assert.Equal(t, "https://www.amazon.com/dp/X", rec.URL)
	})
}
