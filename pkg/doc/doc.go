// Package doc models a design document as a rooted tree of nodes.
//
// # Overview
//
// A document is a single tree. Every node has a kind (frame, group,
// instance, text, rectangle, ...), geometry, an ordered fill list, and
// - for containers - an ordered sequence of children. Child order is
// meaningful: it is the paint order (z-order) and every structural
// operation in this package preserves it.
//
// Ownership follows the tree: a container exclusively owns its child
// sequence, and each child holds a non-owning back-reference to its
// parent. The parent pointer is used for sibling-index lookup and for
// the "still attached" liveness check; a node whose Parent is nil has
// been removed from the document.
//
// # JSON Format
//
// Documents serialize to a single JSON object:
//
//	{
//	  "name": "Onboarding",
//	  "root": {
//	    "id": "0:1",
//	    "name": "Page 1",
//	    "type": "FRAME",
//	    "children": [
//	      {"id": "1:2", "name": "Title", "type": "TEXT",
//	       "width": 320, "height": 40, "characters": "Welcome",
//	       "fontSize": 32,
//	       "fills": [{"type": "SOLID", "color": {"r": 0, "g": 0, "b": 0}}]}
//	    ]
//	  }
//	}
//
// Parent pointers are not serialized; they are rebuilt on import.
// See [Read] and [Write] for round-trip import/export.
package doc
