// Package io reads and writes model description files.
//
// A model file lists the classes and enumerations of a code base the way a
// source reader extracted them. It is the input of the generator and can be
// written in YAML or JSON:
//
//	top_level_namespace: Acme.Shop
//	classes:
//	  - namespace: Acme.Shop.Orders
//	    name: Order
//	    base: Acme.Shop.Domain.AggregateRoot
//	    associations:
//	      - name: customer
//	        type: Acme.Shop.Customers.Customer
//	      - name: lines
//	        type: Acme.Shop.Orders.OrderLine
//	        list: true
//	      - name: note
//	        type: string?
//	enumerations:
//	  - namespace: Acme.Shop.Orders
//	    name: Status
//	    values: [Open, Paid, Shipped]
//
// # Type References
//
// Base types and association types are written either as a dotted full
// name, split at the last dot into namespace and name, or as a mapping with
// explicit "name" and "namespace" keys. A trailing "?" on the name marks the
// association nullable.
//
// # Namespaces
//
// When a top-level namespace is set, in the file or through [ReadOptions],
// it is stripped from every namespace as a whole dotted prefix before the
// entities are registered. Entities matching one of [ReadOptions.Excludes]
// are skipped; references to them stay unresolved and render as plain
// attributes.
//
// # Export
//
// [WriteYAML] and [WriteJSON] write a project back out using relative
// namespaces. Reading the result with no top-level namespace yields an
// equivalent project.
package io
