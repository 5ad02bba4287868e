package main

import (
	"fmt"

	"github.com/fwojciec/pagedigest"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagedigest.Errorf(pagedigest.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Insights.DeleteInsight(deps.Ctx, c.ID); err != nil {
		if pagedigest.ErrorCode(err) == pagedigest.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: digest %q not found. Use 'pagedigest history' to see saved digests.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted digest %s\n", c.ID)
	return nil
}
