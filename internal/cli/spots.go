package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/memodb-io/rentspot/internal/store/reviews"
	"github.com/memodb-io/rentspot/internal/store/spots"
)

func newSpotsCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spots",
		Aliases: []string{"spot"},
		Short:   "Browse and manage spots",
	}
	cmd.AddCommand(
		newSpotsListCmd(o),
		newSpotsShowCmd(o),
		newSpotsCreateCmd(o),
		newSpotsUpdateCmd(o),
		newSpotsDeleteCmd(o),
		newSpotsImageCmd(o),
	)
	return cmd
}

func writeSpotLine(w io.Writer, s spots.Spot) {
	title := s.Name
	if title == "" {
		title = s.Address
	}
	fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
		MutedStyle.Render(fmt.Sprintf("#%d", s.ID)),
		TitleStyle.Render(title),
		SubtitleStyle.Render(location(s)),
		fmt.Sprintf("$%.2f/night", s.Price),
		RenderRating(s.AvgRating, s.NumReviews))
}

func location(s spots.Spot) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.City, s.State, s.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func writeReviewLine(w io.Writer, r reviews.Review) {
	fmt.Fprintf(w, "%s  %s  %s\n",
		MutedStyle.Render(fmt.Sprintf("#%d", r.ID)),
		RenderStars(r.Stars),
		r.Review)
}

func newSpotsListCmd(o *Options) *cobra.Command {
	var q spots.ListQuery
	var minPrice, maxPrice float64

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List spots",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-price") {
				q.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				q.MaxPrice = &maxPrice
			}

			c, err := o.client()
			if err != nil {
				return err
			}
			if _, err := c.Spots.FetchAll(cmd.Context(), c.Store, q); err != nil {
				return err
			}

			list := c.Select.Spots(c.Store.State())
			return render(o.Out, o.Format, list, func(w io.Writer) {
				if len(list) == 0 {
					fmt.Fprintln(w, MutedStyle.Render("no spots"))
					return
				}
				for _, s := range list {
					writeSpotLine(w, s)
				}
			})
		},
	}
	cmd.Flags().IntVar(&q.Page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&q.Size, "size", 0, "page size (max 20)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum nightly price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum nightly price")
	return cmd
}

func newSpotsShowCmd(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   "Show a spot with its reviews",
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

			var rs []reviews.Review
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				_, err := c.Spots.FetchOne(ctx, c.Store, id)
				return err
			})
			g.Go(func() error {
				var err error
				rs, err = c.Spots.FetchReviews(ctx, c.Store, id)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			// reviews that landed before the spot were not attached to it
			s, _ := spots.SelectByID(c.Store.State().Spots, id)
			if s.Reviews == nil {
				s.Reviews = rs
			}

			return render(o.Out, o.Format, s, func(w io.Writer) {
				writeSpotLine(w, s)
				if s.Description != "" {
					fmt.Fprintln(w, "  "+s.Description)
				}
				for _, img := range s.SpotImages {
					marker := " "
					if img.Preview {
						marker = "*"
					}
					fmt.Fprintf(w, "  %s %s\n", marker, MutedStyle.Render(img.URL))
				}
				fmt.Fprintln(w)
				if len(s.Reviews) == 0 {
					fmt.Fprintln(w, MutedStyle.Render("no reviews yet"))
					return
				}
				for _, r := range s.Reviews {
					writeReviewLine(w, r)
				}
			})
		},
	}
}

type spotFlags struct {
	address, city, state, country, name, description string
	lat, lng, price                                  float64
}

func (f *spotFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.address, "address", "", "street address")
	fs.StringVar(&f.city, "city", "", "city")
	fs.StringVar(&f.state, "state", "", "state")
	fs.StringVar(&f.country, "country", "", "country")
	fs.StringVar(&f.name, "name", "", "display name")
	fs.StringVar(&f.description, "description", "", "description")
	fs.Float64Var(&f.lat, "lat", 0, "latitude")
	fs.Float64Var(&f.lng, "lng", 0, "longitude")
	fs.Float64Var(&f.price, "price", 0, "nightly price")
}

func (f *spotFlags) payload() spots.Payload {
	return spots.Payload{
		Address:     f.address,
		City:        f.city,
		State:       f.state,
		Country:     f.country,
		Lat:         f.lat,
		Lng:         f.lng,
		Name:        f.name,
		Description: f.description,
		Price:       f.price,
	}
}

// patch keeps only the flags given on the command line.
func (f *spotFlags) patch(cmd *cobra.Command) spots.Patch {
	var p spots.Patch
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("address") {
		p.Address = &f.address
	}
	if set("city") {
		p.City = &f.city
	}
	if set("state") {
		p.State = &f.state
	}
	if set("country") {
		p.Country = &f.country
	}
	if set("name") {
		p.Name = &f.name
	}
	if set("description") {
		p.Description = &f.description
	}
	if set("lat") {
		p.Lat = &f.lat
	}
	if set("lng") {
		p.Lng = &f.lng
	}
	if set("price") {
		p.Price = &f.price
	}
	return p
}

func newSpotsCreateCmd(o *Options) *cobra.Command {
	f := &spotFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a spot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			s, err := c.Spots.Create(cmd.Context(), c.Store, f.payload())
			if err != nil {
				return err
			}
			return render(o.Out, o.Format, s, func(w io.Writer) {
				fmt.Fprintln(w, RenderSuccess(fmt.Sprintf("created spot #%d", s.ID)))
				writeSpotLine(w, *s)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newSpotsUpdateCmd(o *Options) *cobra.Command {
	f := &spotFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a spot",
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
			s, err := c.Spots.Update(cmd.Context(), c.Store, id, f.patch(cmd))
			if err != nil {
				return err
			}
			return render(o.Out, o.Format, s, func(w io.Writer) {
				fmt.Fprintln(w, RenderSuccess(fmt.Sprintf("updated spot #%d", s.ID)))
				writeSpotLine(w, *s)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newSpotsDeleteCmd(o *Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a spot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := o.confirm(fmt.Sprintf("Delete spot #%d?", id))
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
			if err := c.Spots.Delete(cmd.Context(), c.Store, id); err != nil {
				return err
			}
			fmt.Fprintln(o.Out, RenderSuccess(fmt.Sprintf("deleted spot #%d", id)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newSpotsImageCmd(o *Options) *cobra.Command {
	var p spots.ImagePayload
	cmd := &cobra.Command{
		Use:   "image <id>",
		Short: "Attach an image url to a spot",
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
			img, err := c.Spots.AddImage(cmd.Context(), id, p)
			if err != nil {
				return err
			}
			return render(o.Out, o.Format, img, func(w io.Writer) {
				fmt.Fprintln(w, RenderSuccess(fmt.Sprintf("added image #%d to spot #%d", img.ID, id)))
			})
		},
	}
	cmd.Flags().StringVar(&p.URL, "url", "", "image url")
	cmd.Flags().BoolVar(&p.Preview, "preview", false, "use as the preview image")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
