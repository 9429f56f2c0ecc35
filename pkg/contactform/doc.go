// Package contactform is the client side of the contact relay. A Form keeps
// the visitor's field values, submits them once per call to Submit and maps
// the reply to a Result and a Notification.
//
//	form, err := contactform.New("https://example.com",
//	    contactform.WithNotifier(contactform.NotifierFunc(func(_ context.Context, n contactform.Notification) {
//	        fmt.Println(n.Kind, n.Message)
//	    })),
//	)
//	if err != nil {
//	    return err
//	}
//	form.UpdateField(contactform.FieldName, "Ada")
//	form.UpdateField(contactform.FieldEmail, "ada@example.com")
//	form.UpdateField(contactform.FieldMessage, "Hello")
//	res, err := form.Submit(ctx)
//
// Messages from the relay are reduced to plain text before they are surfaced.
// Transport errors and undecodable replies become the generic failure message;
// the underlying error is kept in Result.Err.
package contactform
