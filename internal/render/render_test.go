package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/robalobadob/farguessr/internal/frame"
	"github.com/robalobadob/farguessr/internal/game"
	"github.com/robalobadob/farguessr/internal/places"
)

func testPair() *game.Pair {
	p := game.NewPair(
		places.Place{Key: "FR", Name: "France", Lat: 46.2, Lng: 2.2},
		places.Place{Key: "BA", Name: "Bosnia & Herzegovina", Lat: 43.9, Lng: 17.7},
	)
	return &p
}

func renderDoc(t *testing.T, r Renderer, v View) (*goquery.Document, string) {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc, out
}

func TestCardStates(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Card.ContentType() != "image/svg+xml" {
		t.Errorf("content type = %q", set.Card.ContentType())
	}
	pair := testPair()
	rating, err := game.RateGuess(*pair, game.Directions(*pair), 1000, pair.Direction)
	if err != nil {
		t.Fatalf("RateGuess: %v", err)
	}

	t.Run("initial", func(t *testing.T) {
		doc, out := renderDoc(t, set.Card, View{Status: frame.StatusInitial, Message: "Invalid request :/"})
		if !strings.HasPrefix(out, "<svg") {
			t.Errorf("output does not start with <svg: %.40q", out)
		}
		if got := doc.Find("text.message").Text(); got != "Invalid request :/" {
			t.Errorf("message = %q", got)
		}
		if doc.Find("text.source").Length() != 0 {
			t.Errorf("initial card shows a pair")
		}
	})

	t.Run("started", func(t *testing.T) {
		doc, _ := renderDoc(t, set.Card, View{Status: frame.StatusStarted, Mode: frame.ModeDaily, Pair: pair})
		if got := doc.Find("text.source").Text(); got != "France" {
			t.Errorf("source = %q", got)
		}
		if got := doc.Find("text.destination").Text(); got != "Bosnia & Herzegovina?" {
			t.Errorf("destination = %q", got)
		}
		if !strings.Contains(doc.Find("text").First().Text(), "Daily") {
			t.Errorf("title lacks mode: %q", doc.Find("text").First().Text())
		}
	})

	t.Run("guessed", func(t *testing.T) {
		doc, _ := renderDoc(t, set.Card, View{Status: frame.StatusGuessed, Pair: pair, Rating: &rating})
		if got := doc.Find("text.guess").Text(); !strings.Contains(got, "1000 km") {
			t.Errorf("guess = %q", got)
		}
		if got := doc.Find("text.score").Text(); !strings.HasPrefix(got, game.StarsString(rating.Stars)) {
			t.Errorf("score = %q", got)
		}
		if doc.Find("text.message").Length() != 0 {
			t.Errorf("unexpected message")
		}
	})
}

func TestSharePage(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pair := testPair()
	rating, err := game.RateGuess(*pair, game.Directions(*pair), pair.DistanceKm, pair.Direction)
	if err != nil {
		t.Fatalf("RateGuess: %v", err)
	}

	doc, _ := renderDoc(t, set.Share, View{
		Status:     frame.StatusGuessed,
		Pair:       pair,
		Rating:     &rating,
		ImageURL:   "https://farguessr.example/images?status=GUESSED&sig=abc",
		PlayURL:    "https://farguessr.example/frames",
		GeoJSONURL: "https://farguessr.example/share/geojson?status=GUESSED&sig=abc",
	})

	if got := doc.Find("title").Text(); got != "Farguessr · France → Bosnia & Herzegovina" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Find("span.destination").Text(); got != "Bosnia & Herzegovina" {
		t.Errorf("destination = %q", got)
	}
	if got := doc.Find("dd.difference").Text(); !strings.HasSuffix(got, " km") {
		t.Errorf("difference = %q", got)
	}
	if got := doc.Find("dd.score").Text(); got != "★★★★★ 100.0%" {
		t.Errorf("score = %q", got)
	}
	if href, _ := doc.Find("a.geojson").Attr("href"); href != "https://farguessr.example/share/geojson?status=GUESSED&sig=abc" {
		t.Errorf("geojson href = %q", href)
	}
	if img, _ := doc.Find(`meta[property="og:image"]`).Attr("content"); !strings.Contains(img, "/images?") {
		t.Errorf("og:image = %q", img)
	}
}

func TestSharePageWithoutRound(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	doc, _ := renderDoc(t, set.Share, View{Status: frame.StatusInitial, Message: "Invalid request :/"})
	if got := doc.Find("title").Text(); got != "Farguessr" {
		t.Errorf("title = %q", got)
	}
	if doc.Find("dl.rating").Length() != 0 {
		t.Errorf("rating rendered without a round")
	}
	if got := doc.Find("p.message").Text(); got != "Invalid request :/" {
		t.Errorf("message = %q", got)
	}
}

func TestShareText(t *testing.T) {
	got := ShareText(7, "https://farguessr.example")
	want := "Farguessr\n\n★★★⯪☆\n\nhttps://farguessr.example"
	if got != want {
		t.Errorf("ShareText = %q, want %q", got, want)
	}
}

func TestPageAnnouncesFrame(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := &frame.Frame{
		Status:  frame.StatusInitial,
		Image:   "https://farguessr.example/images?status=INITIAL&sig=img",
		PostURL: "https://farguessr.example/frames?status=INITIAL&sig=post",
		Buttons: []frame.Button{
			{Label: "Daily", Action: frame.ActionPost},
			{Label: "🎲 Random", Action: frame.ActionPost},
		},
	}
	doc, _ := renderDoc(t, set.Share, View{
		Status:    frame.StatusInitial,
		Frame:     f,
		ImageURL:  f.Image,
		ShareText: ShareText(4, "https://farguessr.example"),
	})

	meta := func(property string) string {
		v, _ := doc.Find(`meta[property="` + property + `"]`).Attr("content")
		return v
	}
	if meta("fc:frame") != "vNext" {
		t.Errorf("fc:frame = %q", meta("fc:frame"))
	}
	if meta("fc:frame:image") != f.Image || meta("fc:frame:post_url") != f.PostURL {
		t.Errorf("frame urls = %q, %q", meta("fc:frame:image"), meta("fc:frame:post_url"))
	}
	if meta("fc:frame:button:1") != "Daily" || meta("fc:frame:button:2") != "🎲 Random" {
		t.Errorf("buttons = %q, %q", meta("fc:frame:button:1"), meta("fc:frame:button:2"))
	}
	if meta("fc:frame:button:2:action") != "post" {
		t.Errorf("button action = %q", meta("fc:frame:button:2:action"))
	}
	if doc.Find("p.intro").Length() != 1 {
		t.Errorf("landing page has no intro")
	}
	if got := doc.Find("pre.share-text").Text(); !strings.HasPrefix(got, "Farguessr\n\n★★☆☆☆") {
		t.Errorf("share text = %q", got)
	}
}
