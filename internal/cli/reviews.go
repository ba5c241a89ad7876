package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/memodb-io/rentspot/internal/store/reviews"
)

func newReviewsCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reviews",
		Aliases: []string{"review"},
		Short:   "Read and write reviews",
	}
	cmd.AddCommand(
		newReviewsListCmd(o),
		newReviewsShowCmd(o),
		newReviewsAddCmd(o),
		newReviewsUpdateCmd(o),
		newReviewsDeleteCmd(o),
		newReviewsImageCmd(o),
	)
	return cmd
}

func newReviewsListCmd(o *Options) *cobra.Command {
	var spotID int64
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List reviews, optionally of one spot",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			if _, err := c.Reviews.FetchAll(cmd.Context(), c.Store); err != nil {
				return err
			}

			state := c.Store.State()
			list := c.Select.Reviews(state)
			if spotID > 0 {
				list = reviews.MakeSelectBySpot(spotID)(state.Reviews)
			}
			return render(o.Out, o.Format, list, func(w io.Writer) {
				if len(list) == 0 {
					fmt.Fprintln(w, MutedStyle.Render("no reviews"))
					return
				}
				for _, r := range list {
					fmt.Fprintf(w, "%s ", MutedStyle.Render(fmt.Sprintf("spot #%d", r.SpotID)))
					writeReviewLine(w, r)
				}
			})
		},
	}
	cmd.Flags().Int64Var(&spotID, "spot", 0, "only reviews of this spot")
	return cmd
}

func newReviewsShowCmd(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   "Show a review",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			r, err := c.Reviews.FetchOne(cmd.Context(), c.Store, id)
			if err != nil {
				return err
			}
			return render(o.Out, o.Format, r, func(w io.Writer) {
				writeReviewLine(w, *r)
				for _, img := range r.ReviewImages {
					fmt.Fprintf(w, "  %s\n", MutedStyle.Render(img.URL))
				}
			})
		},
	}
}

func newReviewsAddCmd(o *Options) *cobra.Command {
	var p reviews.Payload
	cmd := &cobra.Command{
		Use:   "add <spot-id>",
		Short: "Review a spot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spotID, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			r, err := c.Reviews.Create(cmd.Context(), c.Store, spotID, p)
			if err != nil {
				return err
			}
			return render(o.Out, o.Format, r, func(w io.Writer) {
				fmt.Fprintln(w, RenderSuccess(fmt.Sprintf("reviewed spot #%d", spotID)))
				writeReviewLine(w, *r)
			})
		},
	}
	cmd.Flags().StringVar(&p.Review, "review", "", "review text")
	cmd.Flags().IntVar(&p.Stars, "stars", 0, "rating from 1 to 5")
	_ = cmd.MarkFlagRequired("review")
	_ = cmd.MarkFlagRequired("stars")
	return cmd
}

func newReviewsUpdateCmd(o *Options) *cobra.Command {
	var text string
	var stars int
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var p reviews.Patch
			if cmd.Flags().Changed("review") {
				p.Review = &text
			}
			if cmd.Flags().Changed("stars") {
				p.Stars = &stars
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			r, err := c.Reviews.Update(cmd.Context(), c.Store, id, p)
			if err != nil {
				return err
			}
			return render(o.Out, o.Format, r, func(w io.Writer) {
				fmt.Fprintln(w, RenderSuccess(fmt.Sprintf("updated review #%d", r.ID)))
				writeReviewLine(w, *r)
			})
		},
	}
	cmd.Flags().StringVar(&text, "review", "", "review text")
	cmd.Flags().IntVar(&stars, "stars", 0, "rating from 1 to 5")
	return cmd
}

func newReviewsDeleteCmd(o *Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a review",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := o.confirm(fmt.Sprintf("Delete review #%d?", id))
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			if err := c.Reviews.Delete(cmd.Context(), c.Store, id); err != nil {
				return err
			}
			fmt.Fprintln(o.Out, RenderSuccess(fmt.Sprintf("deleted review #%d", id)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newReviewsImageCmd(o *Options) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "image <id>",
		Short: "Attach an image url to a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			img, err := c.Reviews.AddImage(cmd.Context(), id, url)
			if err != nil {
				return err
			}
			return render(o.Out, o.Format, img, func(w io.Writer) {
				fmt.Fprintln(w, RenderSuccess(fmt.Sprintf("added image #%d to review #%d", img.ID, id)))
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "image url")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
