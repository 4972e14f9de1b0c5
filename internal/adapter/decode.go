// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/go-content-mirror/models"
)

// Record types of the sync feed.
const (
	sysTypeEntry        = "Entry"
	sysTypeAsset        = "Asset"
	sysTypeDeletedEntry = "DeletedEntry"
	sysTypeDeletedAsset = "DeletedAsset"
	sysTypeLink         = "Link"
)

type syncPage struct {
	Items       []syncItem `json:"items"`
	NextPageURL string     `json:"nextPageUrl"`
	NextSyncURL string     `json:"nextSyncUrl"`
}

type syncItem struct {
	Sys    itemSys                    `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

type itemSys struct {
	Type        string     `json:"type"`
	ID          string     `json:"id"`
	Revision    int64      `json:"revision"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	ContentType *struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType"`
}

// decodePage converts a raw sync response into a DeltaPage. Fields are
// unwrapped to locale; a field without a value for locale is omitted.
func decodePage(body []byte, locale string) (models.DeltaPage, error) {
	var raw syncPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.DeltaPage{}, fmt.Errorf("%w: %w", ErrMalformedPage, err)
	}

	var page models.DeltaPage
	switch {
	case raw.NextPageURL != "":
		token, err := tokenFromURL(raw.NextPageURL)
		if err != nil {
			return models.DeltaPage{}, err
		}
		page.NextPageToken = token
	case raw.NextSyncURL != "":
		token, err := tokenFromURL(raw.NextSyncURL)
		if err != nil {
			return models.DeltaPage{}, err
		}
		page.NextSyncToken = token
	default:
		return models.DeltaPage{}, fmt.Errorf("%w: neither nextPageUrl nor nextSyncUrl present", ErrMalformedPage)
	}

	for _, item := range raw.Items {
		if item.Sys.ID == "" {
			return models.DeltaPage{}, fmt.Errorf("%w: %s item without id", ErrMalformedPage, item.Sys.Type)
		}

		switch item.Sys.Type {
		case sysTypeEntry:
			if item.Sys.ContentType == nil || item.Sys.ContentType.Sys.ID == "" {
				return models.DeltaPage{}, fmt.Errorf("%w: entry %s without content type", ErrMalformedPage, item.Sys.ID)
			}
			fields, err := decodeFields(item.Fields, locale)
			if err != nil {
				return models.DeltaPage{}, fmt.Errorf("entry %s: %w", item.Sys.ID, err)
			}
			page.Entries = append(page.Entries, models.Entry{
				Identifier:    item.Sys.ID,
				ContentTypeID: item.Sys.ContentType.Sys.ID,
				Fields:        fields,
				Revision:      item.Sys.Revision,
				UpdatedAt:     item.Sys.UpdatedAt,
			})
		case sysTypeAsset:
			fields, err := decodeFields(item.Fields, locale)
			if err != nil {
				return models.DeltaPage{}, fmt.Errorf("asset %s: %w", item.Sys.ID, err)
			}
			page.Assets = append(page.Assets, models.Asset{
				Identifier: item.Sys.ID,
				Fields:     fields,
				Revision:   item.Sys.Revision,
				UpdatedAt:  item.Sys.UpdatedAt,
			})
		case sysTypeDeletedEntry:
			page.DeletedEntries = append(page.DeletedEntries, item.Sys.ID)
		case sysTypeDeletedAsset:
			page.DeletedAssets = append(page.DeletedAssets, item.Sys.ID)
		}
	}

	return page, nil
}

func tokenFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedPage, err)
	}
	token := u.Query().Get(syncTokenParam)
	if token == "" {
		return "", fmt.Errorf("%w: %s has no %s", ErrMalformedPage, raw, syncTokenParam)
	}
	return token, nil
}

func decodeFields(raw map[string]json.RawMessage, locale string) (models.Fields, error) {
	fields := make(models.Fields, len(raw))
	for name, localized := range raw {
		var values map[string]any
		if err := json.Unmarshal(localized, &values); err != nil {
			return nil, fmt.Errorf("%w: field %s is not localized: %w", ErrMalformedPage, name, err)
		}
		v, ok := values[locale]
		if !ok {
			continue
		}
		fields[name] = decodeValue(v)
	}
	return fields, nil
}

func decodeValue(v any) models.FieldValue {
	switch val := v.(type) {
	case nil:
		return models.Null()
	case map[string]any:
		if link, ok := asLink(val); ok {
			return models.FieldValue{Kind: models.KindLink, Link: link}
		}
		nested := make(models.Fields, len(val))
		for k, inner := range val {
			nested[k] = decodeValue(inner)
		}
		return models.Nested(nested)
	case []any:
		if links, ok := asLinks(val); ok {
			return models.FieldValue{Kind: models.KindLinkSequence, Links: links}
		}
		return models.Sequence(val...)
	default:
		return models.Scalar(val)
	}
}

// asLink recognizes {"sys": {"id": ..}}, optionally carrying "type": "Link"
// and a "linkType". A sys object of any other type is not a link.
func asLink(obj map[string]any) (models.Link, bool) {
	sys, ok := obj["sys"].(map[string]any)
	if !ok {
		return models.Link{}, false
	}
	if t, present := sys["type"]; present && t != sysTypeLink {
		return models.Link{}, false
	}
	id, _ := sys["id"].(string)
	if id == "" {
		return models.Link{}, false
	}
	linkType, _ := sys["linkType"].(string)
	return models.Link{ID: id, LinkType: linkType}, true
}

func asLinks(values []any) ([]models.Link, bool) {
	if len(values) == 0 {
		return nil, false
	}
	links := make([]models.Link, 0, len(values))
	for _, v := range values {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		link, ok := asLink(obj)
		if !ok {
			return nil, false
		}
		links = append(links, link)
	}
	return links, true
}
