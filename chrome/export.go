package chrome

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// link is an anchor of a bookmark export, along with the folder it is in.
type link struct {
	Folder  string
	Title   string
	URL     string
	AddDate int64
}

// parseExport reads a bookmark file in the Netscape format exported by
// Chrome and Firefox: nested <DL> lists whose <DT> hold either an <H3>
// folder name followed by its own <DL>, or an <A> bookmark.
func parseExport(r io.Reader) ([]link, error) {
	z := html.NewTokenizer(r)

	var links []link
	var err error
Loop:
	for {
		tt := z.Next()

		switch tt {
		case html.ErrorToken:
			err = z.Err()
			break Loop
		case html.StartTagToken:
			token := z.Token()
			if token.DataAtom == atom.Dl {
				links, err = visitDl("", z)
				break Loop
			}
		}
	}

	if err != nil && err != io.EOF {
		return nil, err
	}
	return links, nil
}

func visitDl(folder string, z *html.Tokenizer) ([]link, error) {
	var links []link
	pendingFolder := ""

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// Exports are often left unclosed.
			if z.Err() == io.EOF {
				return links, nil
			}
			return nil, z.Err()
		case html.EndTagToken:
			if z.Token().DataAtom == atom.Dl {
				return links, nil
			}
		case html.StartTagToken:
			token := z.Token()
			switch token.DataAtom {
			case atom.A:
				l, err := readLink(folder, token, z)
				if err != nil {
					return nil, err
				}
				links = append(links, l)
			case atom.H3:
				name, err := readText(z)
				if err != nil {
					return nil, err
				}
				pendingFolder = joinFolder(folder, name)
			case atom.Dl:
				sub, err := visitDl(pendingFolder, z)
				if err != nil {
					return nil, err
				}
				links = append(links, sub...)
				pendingFolder = ""
			}
		}
	}
}

func readLink(folder string, a html.Token, z *html.Tokenizer) (link, error) {
	l := link{Folder: folder}
	for _, attr := range a.Attr {
		switch attr.Key {
		case "href":
			l.URL = attr.Val
		case "add_date":
			l.AddDate, _ = strconv.ParseInt(attr.Val, 10, 64)
		}
	}

	title, err := readText(z)
	if err != nil {
		return link{}, err
	}
	l.Title = title
	return l, nil
}

// readText returns the text right after the current start tag. An element
// without text, or cut short by the end of the export, gives an empty string.
func readText(z *html.Tokenizer) (string, error) {
	switch tt := z.Next(); tt {
	case html.TextToken:
		return strings.TrimSpace(z.Token().Data), nil
	case html.EndTagToken:
		return "", nil
	case html.ErrorToken:
		if z.Err() == io.EOF {
			return "", nil
		}
		return "", z.Err()
	default:
		return "", fmt.Errorf("expected text token, got %v", tt)
	}
}

func joinFolder(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
