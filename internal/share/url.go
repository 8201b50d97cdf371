package share

import (
	"net/url"
	"strings"

	"archiveheart/internal/track"
)

// ViewPath is the path shared timelines are served under.
const ViewPath = "/view"

// DataParam is the query parameter carrying the compressed payload.
const DataParam = "data"

// BuildURL embeds a compressed payload into <base>/view?data=<payload>.
func BuildURL(base, compressed string) string {
	return strings.TrimRight(base, "/") + ViewPath + "?" + DataParam + "=" + url.QueryEscape(compressed)
}

// ExtractData returns the percent-decoded payload of a share link. A value
// that is not a URL at all is treated as a bare payload.
func ExtractData(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", decodeErr("empty link", nil)
	}

	if !strings.Contains(link, "?") && !strings.Contains(link, "://") {
		data, err := url.QueryUnescape(link)
		if err != nil {
			return "", decodeErr("payload is not percent-encoded correctly", err)
		}
		return data, nil
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", decodeErr("link is not a valid URL", err)
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", decodeErr("link query is malformed", err)
	}
	data := values.Get(DataParam)
	if data == "" {
		return "", decodeErr("link has no data parameter", nil)
	}
	return data, nil
}

// ShareURL encodes tracks and returns a complete share link on base.
func (c *Codec) ShareURL(base string, tracks []track.Track, skinID string) (string, error) {
	compressed, err := c.Encode(tracks, skinID)
	if err != nil {
		return "", err
	}
	return BuildURL(base, compressed), nil
}

// ParseURL extracts and decodes the payload of a share link.
func (c *Codec) ParseURL(link string) (Payload, error) {
	data, err := ExtractData(link)
	if err != nil {
		return Payload{}, err
	}
	return c.Decode(data)
}
