// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package grocery implements the store, item, and shopping list operations.

Every operation runs inside one repository transaction, so a check and the
write that depends on it see the same data.

# Catalogue

Stores and items are shared by all users. Item input is trimmed and
validated before any query runs:

  - price is required, at least 0, and below 100,000,000; it is rounded to
    cents
  - category is matched ignoring case; blank or unknown becomes Other
  - a blank photo URL is stored as NULL
  - the store must exist, otherwise models.ErrNotFound

# Shopping Lists

A list belongs to the user who created it. Reading or changing another
user's list returns models.ErrPermission:

	list, err := svc.GetShoppingList(ctx, listID, callerID)
	if errors.Is(err, models.ErrPermission) {
		// redirect with a flash
	}

AddListEntry defaults the quantity to 1 and adds to the existing quantity
when the item is already on the list. RemoveListEntry succeeds when the item
is absent.
*/
package grocery
