package webdav

import (
	"encoding/xml"
	"net/http"
	"time"
)

const defaultMimeType = "application/octet-stream"

// Struktury odpowiedzi PROPFIND. Serializacja przez encoding/xml, więc
// znaki specjalne w nazwach zasobów są zawsze poprawnie escapowane.
type multistatus struct {
	XMLName   xml.Name      `xml:"D:multistatus"`
	XMLNS     string        `xml:"xmlns:D,attr"`
	Responses []davResponse `xml:"D:response"`
}

type davResponse struct {
	Href     string      `xml:"D:href"`
	Propstat davPropstat `xml:"D:propstat"`
}

type davPropstat struct {
	Prop   davProp `xml:"D:prop"`
	Status string  `xml:"D:status"`
}

type davProp struct {
	DisplayName   string          `xml:"D:displayname"`
	CreationDate  string          `xml:"D:creationdate"`
	LastModified  string          `xml:"D:getlastmodified"`
	ResourceType  davResourceType `xml:"D:resourcetype"`
	ContentLength *int64          `xml:"D:getcontentlength,omitempty"`
	ContentType   string          `xml:"D:getcontenttype,omitempty"`
}

type davResourceType struct {
	Collection *struct{} `xml:"D:collection,omitempty"`
}

var collectionMarker = &struct{}{}

// renderProps mapuje rozwiązany zasób na jego blok właściwości.
// Korzeń nie ma zapisanych znaczników czasu, więc dostaje "teraz".
func renderProps(res Resource, href string) davResponse {
	now := time.Now()

	var prop davProp
	switch v := res.(type) {
	case Root:
		prop = davProp{
			DisplayName:  "Root",
			CreationDate: now.UTC().Format(time.RFC3339),
			LastModified: now.UTC().Format(http.TimeFormat),
			ResourceType: davResourceType{Collection: collectionMarker},
		}
	case FolderResource:
		prop = davProp{
			DisplayName:  v.Folder.Name,
			CreationDate: v.Folder.CreatedAt.UTC().Format(time.RFC3339),
			LastModified: v.Folder.UpdatedAt.UTC().Format(http.TimeFormat),
			ResourceType: davResourceType{Collection: collectionMarker},
		}
	case FileResource:
		size := v.File.SizeBytes
		mimeType := defaultMimeType
		if v.File.MimeType != nil && *v.File.MimeType != "" {
			mimeType = *v.File.MimeType
		}
		prop = davProp{
			DisplayName:   v.File.Name,
			CreationDate:  v.File.CreatedAt.UTC().Format(time.RFC3339),
			LastModified:  v.File.UpdatedAt.UTC().Format(http.TimeFormat),
			ContentLength: &size,
			ContentType:   mimeType,
		}
	}

	return davResponse{
		Href: href,
		Propstat: davPropstat{
			Prop:   prop,
			Status: "HTTP/1.1 200 OK",
		},
	}
}

func renderMultistatus(responses []davResponse) ([]byte, error) {
	body, err := xml.Marshal(multistatus{
		XMLNS:     "DAV:",
		Responses: responses,
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
