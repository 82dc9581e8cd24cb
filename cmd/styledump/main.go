package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/html"

	"ampress/sanitize"
)

func main() {
	assets := flag.String("assets", "", "directory linked stylesheets resolve into")
	budget := flag.Int("budget", 0, "custom CSS budget in bytes (0 = default)")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: styledump [-assets dir] [-budget n] <file-or-url>")
	}
	target := flag.Arg(0)

	raw, err := load(target)
	if err != nil {
		log.Fatal(err)
	}
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		log.Fatal(err)
	}

	opts := sanitize.Options{}
	if *assets != "" {
		opts.Resolver = &sanitize.DirResolver{Roots: []string{*assets}}
	}
	if *budget > 0 {
		opts.Limits = sanitize.NewCatalog(map[string]int{sanitize.SpecNameCustomStyle: *budget})
	}
	report, err := sanitize.New(doc, opts).Sanitize()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(customStyleText(doc))
	for _, key := range report.Skipped {
		fmt.Printf("skipped: %s\n", key)
	}
	for _, ev := range report.Dropped {
		fmt.Printf("dropped: %s %s (%s)\n", ev.Code, ev.Key, ev.Message)
	}
}

func load(target string) ([]byte, error) {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "styledump/1.0")
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(target)
}

func customStyleText(doc *html.Node) string {
	var out string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "style") {
			for _, a := range n.Attr {
				if strings.EqualFold(a.Key, "amp-custom") {
					if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
						out = n.FirstChild.Data
					}
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return out
}
