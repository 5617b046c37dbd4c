// Package cloud provides the serialization types for word cloud layouts.
//
// This package defines the wire format shared by JSON files, the HTTP API,
// and the layout caches (file, Redis and MongoDB). It has no dependencies on
// the placement engine so that any consumer can decode a layout.
//
// # Architecture
//
//   - [Layout], [Word], [Summary]: serialization types (this package)
//   - pkg/core/cloud/layout.Layout: internal layout used during placement
//
// Convert with layout.Layout.Export and layout.Parse.
//
// # Layout Serialization
//
//	{
//	  "width": 800, "height": 600, "shape": "circle", "scale": 1,
//	  "words": [
//	    {"text": "gopher", "count": 12, "rank": 0, "font_size": 70,
//	     "rotation": 0, "x": 291, "y": 259, "width": 218, "height": 81,
//	     "color": "#1f77b4"}
//	  ],
//	  "summary": {"total_words": 1, "placed_count": 1, "attempts": 1}
//	}
//
// Common operations:
//
//	l, _ := cloud.ReadLayoutFile("layout.json")
//	cloud.WriteLayoutFile(l, "copy.json")
//	data, _ := cloud.MarshalLayout(l)
//	parsed, _ := cloud.UnmarshalLayout(data)
//
// # Concurrency
//
// All functions are safe for concurrent use; Layout values are plain data.
package cloud
