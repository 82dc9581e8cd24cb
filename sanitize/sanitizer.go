// Package sanitize consolidates every stylesheet source in an HTML
// document (style blocks, linked stylesheets, inline style attributes)
// into a single budget-bounded style element suitable for renderers
// that forbid per-element inline styles and cap total CSS size.
package sanitize

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Driver pass states. A pass runs each transition exactly once.
const (
	statePending = iota
	stateSourcesHarvested
	stateInlinesHarvested
	statePacked
)

// Markers recognised on style elements.
const (
	attrBoilerplate = "amp-boilerplate"
	attrKeyframes   = "amp-keyframes"
	attrCustom      = "amp-custom"
)

const inlineKeyPrefix = "inline:"

// Drop event codes.
const (
	DropKeyframesTooLarge = "keyframes_too_large"
	DropKeyframesNotLast  = "keyframes_not_last"
	DropLinkUnresolved    = "link_unresolved"
	DropLinkUnreadable    = "link_unreadable"
)

// DropEvent records a style source that was removed from the document
// without contributing to the output.
type DropEvent struct {
	Code    string
	Key     string
	Message string
}

// Report is the outcome of one sanitization pass.
type Report struct {
	Skipped []string    // collector keys the budget packer left out
	Dropped []DropEvent // source nodes removed as invalid
}

// Options configure a Sanitizer. Zero values select the defaults; a
// nil Resolver makes every linked stylesheet unresolvable.
type Options struct {
	Filter   SafeCSS
	Resolver AssetResolver
	Limits   *Catalog
	Logger   *log.Logger
}

// Sanitizer runs the consolidation pass over one document. Instances
// are single-use: all per-pass state (collector, budget accounting,
// generated classes) lives here and dies with the pass.
type Sanitizer struct {
	doc             *html.Node
	filter          SafeCSS
	resolver        AssetResolver
	logger          *log.Logger
	collector       *Collector
	budget          int
	keyframesBudget int
	state           int
	report          Report
}

var (
	styleMatcher  = cascadia.MustCompile("style:not([" + attrBoilerplate + "])")
	linkMatcher   = cascadia.MustCompile(`link[rel~="stylesheet"]`)
	inlineMatcher = cascadia.MustCompile("[style]")
)

func New(doc *html.Node, opts Options) *Sanitizer {
	filter := opts.Filter
	if filter == nil {
		filter = DefaultFilter
	}
	limits := opts.Limits
	if limits == nil {
		limits = DefaultCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Sanitizer{
		doc:             doc,
		filter:          filter,
		resolver:        opts.Resolver,
		logger:          logger,
		collector:       NewCollector(),
		budget:          limits.Bytes(SpecNameCustomStyle),
		keyframesBudget: limits.Bytes(SpecNameKeyframes),
	}
}

// Sanitize executes the pass: harvest block and link sources, harvest
// inline styles, then pack everything into one style[amp-custom]
// element in the document head. Per-node failures remove the offending
// node and continue; the only hard failure is a document with no html
// element to hold the output.
func (s *Sanitizer) Sanitize() (*Report, error) {
	if s.state != statePending {
		return nil, errors.New("sanitize: pass already ran")
	}
	if s.doc == nil {
		return nil, errors.New("sanitize: nil document")
	}
	s.harvestSources()
	s.state = stateSourcesHarvested
	s.harvestInlines()
	s.state = stateInlinesHarvested
	if err := s.emit(); err != nil {
		return nil, err
	}
	s.state = statePacked
	return &s.report, nil
}

// harvestSources collects style and link nodes in document order, then
// dispatches each to its harvester. Collection happens before any
// mutation so removal cannot disturb the walk. Keyframes blocks are
// validated last: their last-child check must see the tree as it looks
// once the harvested sources are gone.
func (s *Sanitizer) harvestSources() {
	var sources, keyframes []*html.Node
	walk(s.doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Style:
			if !styleMatcher.Match(n) {
				return
			}
			if typ := strings.TrimSpace(getAttr(n, "type")); typ != "" && !strings.EqualFold(typ, "text/css") {
				return
			}
			if hasAttr(n, attrKeyframes) {
				keyframes = append(keyframes, n)
				return
			}
			sources = append(sources, n)
		case atom.Link:
			if linkMatcher.Match(n) {
				sources = append(sources, n)
			}
		}
	})
	for _, n := range sources {
		if n.DataAtom == atom.Style {
			s.harvestStyleElement(n)
		} else {
			s.harvestLink(n)
		}
	}
	for _, n := range keyframes {
		s.checkKeyframes(n, textContent(n))
	}
}

func (s *Sanitizer) harvestStyleElement(n *html.Node) {
	body := textContent(n)
	css := RewriteRules(body)
	removeNode(n)
	if strings.TrimSpace(css) == "" {
		return
	}
	sum := md5.Sum([]byte(css))
	s.collector.Put(hex.EncodeToString(sum[:]), css)
}

// checkKeyframes validates a keyframes style block in place. A block
// over its size limit, or one that is not the last element child of its
// container, is removed and reported. Valid blocks stay untouched and
// never join the consolidated stylesheet.
func (s *Sanitizer) checkKeyframes(n *html.Node, body string) {
	sum := md5.Sum([]byte(body))
	key := "keyframes:" + hex.EncodeToString(sum[:])
	if len(body) > s.keyframesBudget {
		s.drop(n, DropKeyframesTooLarge, key,
			fmt.Sprintf("keyframes block is %d bytes, limit %d", len(body), s.keyframesBudget))
		return
	}
	if nextElementSibling(n) != nil {
		s.drop(n, DropKeyframesNotLast, key, "keyframes block must be the last element child of its container")
		return
	}
}

func (s *Sanitizer) harvestLink(n *html.Node) {
	href := strings.TrimSpace(getAttr(n, "href"))
	if href == "" {
		removeNode(n)
		return
	}
	if typ := strings.TrimSpace(getAttr(n, "type")); typ != "" && !strings.EqualFold(typ, "text/css") {
		removeNode(n)
		return
	}
	if s.resolver == nil {
		s.drop(n, DropLinkUnresolved, href, "no asset resolver configured")
		return
	}
	path, err := s.resolver.Resolve(href)
	if err != nil {
		s.drop(n, DropLinkUnresolved, href, err.Error())
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		s.drop(n, DropLinkUnreadable, href, err.Error())
		return
	}
	css := RewriteRules(string(raw))
	if media := strings.TrimSpace(getAttr(n, "media")); media != "" && !strings.EqualFold(media, "all") {
		css = "@media " + media + "{" + css + "}"
	}
	removeNode(n)
	s.collector.Put(href, css)
}

// harvestInlines replaces every non-empty style attribute with a
// generated class whose declarations live in the collector. Attributes
// that filter down to nothing are removed without a report; that
// silence matches the legacy contract and is deliberate.
func (s *Sanitizer) harvestInlines() {
	var nodes []*html.Node
	walk(s.doc, func(n *html.Node) {
		if n.Type == html.ElementNode && inlineMatcher.Match(n) && strings.TrimSpace(getAttr(n, "style")) != "" {
			nodes = append(nodes, n)
		}
	})
	for _, n := range nodes {
		raw := getAttr(n, "style")
		removeAttr(n, "style")
		decls := ProcessInline(raw, s.filter)
		if len(decls) == 0 {
			continue
		}
		class := ClassName(decls)
		addClass(n, class)
		s.collector.Put(inlineKeyPrefix+class, "."+class+"{"+serializeDeclarations(decls)+"}")
	}
}

// emit packs the collected entries under the custom CSS budget and
// writes the result into a style[amp-custom] element in the head,
// followed by one comment marker per skipped key.
func (s *Sanitizer) emit() error {
	css, skipped := Pack(s.collector.Entries(), s.budget)
	s.report.Skipped = skipped

	head := findOrCreateHead(s.doc)
	if head == nil {
		return errors.New("sanitize: document has no html element to hold the output")
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: attrCustom}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	head.AppendChild(style)
	for _, key := range skipped {
		head.AppendChild(&html.Node{
			Type: html.CommentNode,
			Data: " stylesheet " + key + " skipped: exceeds total CSS budget ",
		})
	}
	return nil
}

func (s *Sanitizer) drop(n *html.Node, code, key, message string) {
	removeNode(n)
	s.report.Dropped = append(s.report.Dropped, DropEvent{Code: code, Key: key, Message: message})
	s.logger.Printf("DROP %s %s: %s", code, key, message)
}
